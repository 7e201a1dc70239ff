package walkthrough

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/storeshots/internal/platform"
)

// terminateTimeout bounds teardown once the run's own context is done.
const terminateTimeout = 30 * time.Second

// WithSession launches app, hands it to fn and terminates it afterwards on
// every exit path: success, error, cancellation and panic. A terminate
// failure is returned only when fn succeeded.
func WithSession(ctx context.Context, app platform.Application, logger *slog.Logger, fn func(ctx context.Context, app platform.Application) error) (err error) {
	if logger == nil {
		logger = slog.Default()
	}

	defer func() {
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminateTimeout)
		defer cancel()
		if terr := app.Terminate(tctx); terr != nil {
			logger.Warn("terminate application", "error", terr)
			if err == nil {
				err = fmt.Errorf("terminate: %w", terr)
			}
			return
		}
		logger.Debug("application terminated")
	}()

	if err := app.Launch(ctx); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	logger.Debug("application launched")
	return fn(ctx, app)
}
