package mcp

func (s *Server) listTools() interface{} {
	changeSchema := map[string]interface{}{
		"type":        "object",
		"description": "A scenario change. Exactly one payload variant must be set, matching 'type'.",
		"properties": map[string]interface{}{
			"type":   map[string]interface{}{"type": "string", "enum": []string{"add", "remove", "modify", "reschedule", "delegate", "split", "merge", "automate"}},
			"target": map[string]interface{}{"type": "string", "enum": []string{"event", "task", "time_budget", "priority", "duration", "deadline"}},
			"add": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{"type": "object", "description": "New calendar event (id, title, start_time, end_time, category, priority)"},
					"task":  map[string]interface{}{"type": "object", "description": "New task (id, title, due_date, status, priority, estimated_minutes)"},
				},
			},
			"remove": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"item_id": map[string]interface{}{"type": "string"}},
			},
			"modify": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id": map[string]interface{}{"type": "string"},
					"field":   map[string]interface{}{"type": "string", "description": "Field to set: title, priority, category, location, status, estimated_minutes"},
					"value":   map[string]interface{}{"type": "string"},
				},
			},
			"reschedule": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id":  map[string]interface{}{"type": "string"},
					"new_time": map[string]interface{}{"type": "string", "description": "New start (event) or due date (task), RFC 3339"},
				},
			},
			"delegate": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id":  map[string]interface{}{"type": "string"},
					"assignee": map[string]interface{}{"type": "string"},
				},
			},
			"split": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id": map[string]interface{}{"type": "string"},
					"parts":   map[string]interface{}{"type": "integer", "description": "Number of parts, >= 2"},
				},
			},
			"merge": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_ids": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					"title":    map[string]interface{}{"type": "string"},
				},
			},
			"automate": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id":    map[string]interface{}{"type": "string"},
					"recurrence": map[string]interface{}{"type": "string", "description": "Recurrence/template marker, e.g. 'weekly'"},
				},
			},
		},
		"required": []string{"type", "target"},
	}

	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "create_scenario",
				"description": "Create a what-if scenario from a baseline snapshot of the user's schedule, tasks and time budgets. " +
					"The baseline is captured once and stays immutable; add hypothetical changes with 'add_change' and evaluate them with 'run_simulation'.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":        map[string]interface{}{"type": "string", "description": "Scenario name"},
						"description": map[string]interface{}{"type": "string"},
						"baseline": map[string]interface{}{
							"type":        "object",
							"description": "Baseline snapshot: {events: [...], tasks: [...], budgets: [...]}",
							"properties": map[string]interface{}{
								"events":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
								"tasks":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
								"budgets": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "object"}},
							},
						},
					},
					"required": []string{"name", "baseline"},
				},
			},
			map[string]interface{}{
				"name": "add_change",
				"description": "Append a hypothetical change to a scenario. Adding a change to an already-simulated scenario resets it to draft. " +
					"Changes referencing unknown item ids are recorded but skipped at simulation time.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario_id": map[string]interface{}{"type": "string"},
						"change":      changeSchema,
					},
					"required": []string{"scenario_id", "change"},
				},
			},
			map[string]interface{}{
				"name": "run_simulation",
				"description": "Simulate a scenario and return its impact analysis, score and recommendations.\n\n" +
					"Modes: 'quick' (adjacent-pair conflict scan, may miss interleaved overlaps - accepted tradeoff), " +
					"'standard' (full algorithms), 'deep' (additionally asks the suggestion provider, degrades to standard on timeout), " +
					"'monte_carlo' (repeats the run with +/-20% duration perturbations and averages the metrics).\n" +
					"New conflicts or risks in the result are data, not errors; the call only fails for malformed changes.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario_id": map[string]interface{}{"type": "string"},
						"mode":        map[string]interface{}{"type": "string", "enum": []string{"quick", "standard", "deep", "monte_carlo"}, "description": "Default: standard"},
					},
					"required": []string{"scenario_id"},
				},
			},
			map[string]interface{}{
				"name": "compare_scenarios",
				"description": "Rank two or more already-simulated scenarios on five weighted dimensions " +
					"(efficiency 0.30, balance 0.20, feasibility 0.20, stress management 0.15, goal achievement 0.15) " +
					"and return the full decision matrix with per-dimension winners and an overall ranking.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario_ids": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "At least two simulated scenario ids"},
					},
					"required": []string{"scenario_ids"},
				},
			},
			map[string]interface{}{
				"name":        "list_scenarios",
				"description": "List all scenarios with their status, score and grade.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_scenario",
				"description": "Get the full scenario including baseline, changes, simulated state, impact and score.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario_id": map[string]interface{}{"type": "string"},
					},
					"required": []string{"scenario_id"},
				},
			},
			map[string]interface{}{
				"name":        "set_active_scenario",
				"description": "Point the session's active-scenario reference at an existing scenario.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario_id": map[string]interface{}{"type": "string"},
					},
					"required": []string{"scenario_id"},
				},
			},
		},
	}
}
