package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"whatif/internal/config"
	"whatif/internal/provider"
	"whatif/internal/scenario"
	"whatif/internal/simulation"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server exposes the what-if engine as MCP tools over stdio.
type Server struct {
	cfg    *config.AppConfig
	repo   *scenario.Repository
	engine *simulation.Engine
}

// NewServer wires the server with explicit dependencies. The repository is
// the single owner of all scenarios for the session; the engine is shared
// across tool calls.
func NewServer(cfg *config.AppConfig, repo *scenario.Repository, suggester provider.SuggestionProvider) *Server {
	engine := simulation.NewEngine(
		simulation.WithMaxDailyHours(cfg.MaxDailyHours),
		simulation.WithTrials(cfg.MonteCarloTrials),
		simulation.WithSuggestionTimeout(cfg.SuggestionTimeout),
		simulation.WithProvider(suggester),
	)
	return &Server{cfg: cfg, repo: repo, engine: engine}
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	if err := s.repo.Load(s.cfg.CacheDir); err != nil {
		log.Warn().Err(err).Msg("Failed to load scenario cache, starting empty")
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return s.repo.Save(s.cfg.CacheDir)
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "whatif",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var text string
	var err error

	switch call.Name {
	case "create_scenario":
		text, err = s.handleCreateScenario(call.Arguments)
	case "add_change":
		text, err = s.handleAddChange(call.Arguments)
	case "run_simulation":
		text, err = s.handleRunSimulation(call.Arguments)
	case "compare_scenarios":
		text, err = s.handleCompareScenarios(call.Arguments)
	case "list_scenarios":
		text, err = s.handleListScenarios()
	case "get_scenario":
		text, err = s.handleGetScenario(call.Arguments)
	case "set_active_scenario":
		text, err = s.handleSetActiveScenario(call.Arguments)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
	}, nil
}

func formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
