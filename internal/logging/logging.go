// Package logging configures the global zerolog logger: a console writer on
// stderr plus a size-rotated log file. Stdout stays clean for the JSON-RPC
// stdio protocol.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init wires the global logger. It runs before config.Load, so it resolves
// DATA_PATH itself, loading a binary-relative .env first (MCP hosts launch
// the server from an arbitrary working directory).
func Init(verbose bool) {
	exePath, exeErr := os.Executable()
	if exeErr == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}

	logDir := resolveLogDir(exePath, exeErr)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create log directory %q: %v\n", logDir, err)
		os.Exit(1)
	}
	probe := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: log directory %q is not writable: %v\n", logDir, err)
		os.Exit(1)
	}
	_ = os.Remove(probe)

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "whatif.log"),
		MaxSize:    16, // megabytes
		MaxBackups: 32,
		MaxAge:     365, // days
		Compress:   true,
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(io.Writer(console), fileWriter)).
		With().
		Timestamp().
		Logger()
}

// resolveLogDir mirrors config.Load: DATA_PATH/logs, falling back to a
// binary-relative logs directory.
func resolveLogDir(exePath string, exeErr error) string {
	if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
		return filepath.Join(dataPath, "logs")
	}
	if exeErr == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}
