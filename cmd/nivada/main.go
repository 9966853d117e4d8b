package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	nivadamcp "github.com/nivadahq/nivada/internal/mcp"
	"github.com/nivadahq/nivada/internal/server"
	"github.com/nivadahq/nivada/pkg/extract"
)

func main() {
	httpAddr := flag.String("http-addr", "", "Address for the HTTP intake API (overrides config, e.g. :8080)")
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	mcpMode := flag.Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	setupLogging(*logLevel)

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	// Capabilities are resolved exactly once; every request shares this
	// registry read-only.
	capCfg := cfg.CapabilityConfig()
	caps := extract.ResolveCapabilities(&capCfg)
	for name, status := range caps.Report() {
		if status == "ok" {
			slog.Info("capability available", "capability", name)
		} else {
			slog.Warn("capability unavailable", "capability", name, "reason", status)
		}
	}

	if *mcpMode {
		runMCP(cfg, caps)
		return
	}

	srv := server.NewServer(cfg, caps)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Fatal(srv.Run())
	}()

	<-shutdownChan

	srv.Shutdown()
}

// runMCP serves the intake tools over stdio until the client hangs up.
func runMCP(cfg *server.Config, caps *extract.Capabilities) {
	pipeline := extract.NewPipeline(caps, cfg.Policy())
	pipeline.SetScale(cfg.OCR.Scale)

	s := nivadamcp.NewMCPServer(pipeline)
	if err := s.Run(context.Background(), &mcpsdk.StdioTransport{}); err != nil {
		log.Fatalf("MCP server stopped: %v", err)
	}
}

// setupLogging routes slog to stderr. In MCP mode stdout carries the
// protocol stream, so logs must never touch it.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	log.SetOutput(os.Stderr)
}
