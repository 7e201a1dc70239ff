package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/storeshots/internal/config"
	"github.com/mj1618/storeshots/internal/platform/sim"
	"github.com/mj1618/storeshots/internal/runner"
	"github.com/mj1618/storeshots/internal/version"
	"github.com/mj1618/storeshots/internal/walkthrough"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the base run configuration.
type mcpServer struct {
	base  config.Config
	runMu sync.Mutex
	mcp   *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

func loadBaseConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// newMCPServer creates and configures an MCP server with the storeshots tools.
func newMCPServer(base config.Config) *mcpServer {
	s := &mcpServer{base: base}
	s.mcp = mcpserver.NewMCPServer("storeshots", version.Version)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("run_walkthrough",
			mcp.WithDescription("Launch the application, run the walkthrough script and capture labelled PNG snapshots. Returns the per-step result as YAML."),
			mcp.WithString("backend", mcp.Description("Application backend: sim, web")),
			mcp.WithString("url", mcp.Description("Page to open (web backend)")),
			mcp.WithString("app_model", mcp.Description("Path to a YAML screen model (sim backend)")),
			mcp.WithString("output_dir", mcp.Description("Directory for snapshots and manifest")),
			mcp.WithString("device", mcp.Description("Device name used as the snapshot file prefix")),
			mcp.WithBoolean("clear_previous", mcp.Description("Remove previous snapshots first")),
			mcp.WithString("script", mcp.Description("Walkthrough script as YAML, e.g. '- capture: Home\\n- tap: 0'. Default: built-in script")),
		),
		s.handleRunWalkthrough,
	)

	s.mcp.AddTool(
		mcp.NewTool("default_script",
			mcp.WithDescription("Return the built-in walkthrough script as YAML"),
		),
		s.handleDefaultScript,
	)

	s.mcp.AddTool(
		mcp.NewTool("states",
			mcp.WithDescription("Return the sim backend's screens and transitions as YAML"),
			mcp.WithString("app_model", mcp.Description("Path to a YAML screen model (default: built-in model)")),
		),
		s.handleStates,
	)
}

// runConfig applies tool arguments over the base configuration.
func (s *mcpServer) runConfig(params map[string]interface{}) (config.Config, error) {
	cfg := s.base
	cfg.Backend = stringParam(params, "backend", cfg.Backend)
	cfg.URL = stringParam(params, "url", cfg.URL)
	cfg.AppModel = stringParam(params, "app_model", cfg.AppModel)
	cfg.OutputDir = stringParam(params, "output_dir", cfg.OutputDir)
	cfg.Device = stringParam(params, "device", cfg.Device)
	cfg.ClearPrevious = boolParam(params, "clear_previous", cfg.ClearPrevious)
	if raw := stringParam(params, "script", ""); raw != "" {
		script, err := walkthrough.ParseScript([]byte(raw))
		if err != nil {
			return cfg, err
		}
		cfg.Script = script
		cfg.ScriptFile = ""
	}
	return cfg, cfg.Validate()
}

func (s *mcpServer) handleRunWalkthrough(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := s.runConfig(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	result, runErr := runner.Run(ctx, cfg, logger)
	text, err := toYAML(result)
	if err != nil {
		return nil, err
	}
	if runErr != nil {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) handleDefaultScript(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := walkthrough.MarshalScript(walkthrough.DefaultScript())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *mcpServer) handleStates(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := sim.DefaultModel()
	if path := stringParam(request.GetArguments(), "app_model", ""); path != "" {
		var err error
		if m, err = sim.LoadModel(path); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	text, err := toYAML(statesResult(m))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}

func toYAML(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml encode: %w", err)
	}
	return string(b), nil
}

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
