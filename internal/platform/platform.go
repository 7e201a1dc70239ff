package platform

import (
	"context"

	"github.com/mj1618/storeshots/internal/model"
)

// Launcher starts and stops the application under test.
type Launcher interface {
	// Launch starts the application. Calling it again on a running
	// application is a no-op.
	Launch(ctx context.Context) error

	// Terminate stops the application and releases its resources.
	Terminate(ctx context.Context) error
}

// Reader queries the application's current UI.
type Reader interface {
	// Buttons returns the button-like elements currently on screen in
	// document order. The result is re-evaluated on every call.
	Buttons(ctx context.Context) ([]model.ElementRef, error)
}

// ActionPerformer simulates user input on queried elements.
type ActionPerformer interface {
	// Activate taps the element. It fails with an *ElementNotFoundError when
	// the ref is stale or no longer resolves.
	Activate(ctx context.Context, ref model.ElementRef) error
}

// Screenshotter captures the application's current screen as PNG bytes.
type Screenshotter interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// Application is a live handle to one application instance.
type Application interface {
	Launcher
	Reader
	ActionPerformer
	Screenshotter
}

// Capturer persists a labelled snapshot of the application's current state.
type Capturer interface {
	Capture(ctx context.Context, label string) error
}
