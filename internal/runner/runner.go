// Package runner wires configuration, a backend application, the snapshot
// capturer and the walkthrough into one run.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mj1618/storeshots/internal/config"
	"github.com/mj1618/storeshots/internal/platform"
	_ "github.com/mj1618/storeshots/internal/platform/sim" // registers the "sim" backend
	_ "github.com/mj1618/storeshots/internal/platform/web" // registers the "web" backend
	"github.com/mj1618/storeshots/internal/snapshot"
	"github.com/mj1618/storeshots/internal/walkthrough"
)

// Run creates the configured backend application and runs the walkthrough
// against it.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (walkthrough.Result, error) {
	if err := cfg.Validate(); err != nil {
		return failed("", err), err
	}
	app, err := platform.NewApplication(cfg.Backend, cfg.PlatformOptions())
	if err != nil {
		return failed("", err), err
	}
	return RunApp(ctx, app, cfg, logger)
}

// RunApp runs the walkthrough against an existing, unlaunched application.
// The application is launched and always terminated. Snapshots and the
// manifest go to cfg.OutputDir.
func RunApp(ctx context.Context, app platform.Application, cfg config.Config, logger *slog.Logger) (walkthrough.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	script, err := cfg.ResolveScript()
	if err != nil {
		return failed(runID, err), err
	}

	logger.Info("starting walkthrough", "backend", cfg.Backend, "device", cfg.Device, "steps", len(script), "output_dir", cfg.OutputDir)

	var result walkthrough.Result
	err = walkthrough.WithSession(ctx, app, logger, func(ctx context.Context, app platform.Application) error {
		capturer, err := snapshot.New(app, snapshot.Options{
			OutputDir:     cfg.OutputDir,
			Device:        cfg.Device,
			Scale:         cfg.Scale,
			ClearPrevious: cfg.ClearPrevious,
			RunID:         runID,
			Backend:       cfg.Backend,
		}, logger)
		if err != nil {
			return err
		}

		var runErr error
		result, runErr = walkthrough.Run(ctx, app, capturer, script, logger)

		path, err := capturer.WriteManifest()
		if err != nil {
			logger.Warn("write manifest", "error", err)
			if runErr == nil {
				return err
			}
		}
		result.Manifest = path
		return runErr
	})

	if result.Action == "" {
		result = failed(runID, err)
	}
	result.RunID = runID
	if err != nil {
		result.OK = false
		if result.Error == "" {
			result.Error = err.Error()
		}
		logger.Error("walkthrough failed", "error", err, "completed", result.Completed, "steps", result.Steps)
		return result, fmt.Errorf("walkthrough: %w", err)
	}
	logger.Info("walkthrough finished", "snapshots", len(result.Snapshots), "manifest", result.Manifest)
	return result, nil
}

func failed(runID string, err error) walkthrough.Result {
	return walkthrough.Result{
		Action:    "walkthrough",
		RunID:     runID,
		Error:     err.Error(),
		Results:   []walkthrough.StepResult{},
		Snapshots: []string{},
	}
}
