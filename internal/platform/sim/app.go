package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/mj1618/storeshots/internal/model"
	"github.com/mj1618/storeshots/internal/platform"
)

func init() {
	platform.Register("sim", func(opts platform.Options) (platform.Application, error) {
		m := DefaultModel()
		if opts.AppModel != "" {
			var err error
			if m, err = LoadModel(opts.AppModel); err != nil {
				return nil, err
			}
		}
		return New(m, opts.Viewport)
	})
}

// Activation records one tap delivered to the application.
type Activation struct {
	State State  `yaml:"state"           json:"state"`
	Index int    `yaml:"index"           json:"index"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Next  State  `yaml:"next"            json:"next"`
}

// App is a simulated application. It implements platform.Application.
type App struct {
	mu          sync.Mutex
	model       *Model
	table       Table
	viewport    platform.Viewport
	launched    bool
	state       State
	generation  uint64
	activations []Activation
}

var _ platform.Application = (*App)(nil)

// New creates an unlaunched application for the given model. A zero
// viewport falls back to platform.DefaultViewport.
func New(m *Model, viewport platform.Viewport) (*App, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if viewport == (platform.Viewport{}) {
		viewport = platform.DefaultViewport
	}
	if err := viewport.Validate(); err != nil {
		return nil, err
	}
	return &App{model: m, table: m.Table(), viewport: viewport}, nil
}

// Launch puts the application on its initial screen. Launching a running
// application does nothing.
func (a *App) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.launched {
		return nil
	}
	a.launched = true
	a.state = a.model.Initial
	a.generation++
	return nil
}

// Terminate stops the application. Refs read before it are invalidated.
func (a *App) Terminate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.launched = false
	a.generation++
	return nil
}

// Buttons returns the enabled buttons of the current screen in document order.
func (a *App) Buttons(ctx context.Context) ([]model.ElementRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return nil, platform.ErrNotLaunched
	}
	return model.RefsFor(model.FilterButtons(a.elementsLocked()), a.generation), nil
}

// Activate taps a button returned by the latest Buttons call.
func (a *App) Activate(ctx context.Context, ref model.ElementRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return platform.ErrNotLaunched
	}
	if ref.Generation != a.generation {
		return platform.StaleRef(ref)
	}
	buttons := model.FilterButtons(a.elementsLocked())
	if ref.Index < 0 || ref.Index >= len(buttons) || buttons[ref.Index].ID != ref.ID {
		return platform.StaleRef(ref)
	}

	next := a.table.Next(a.state, ref.Index)
	a.activations = append(a.activations, Activation{
		State: a.state,
		Index: ref.Index,
		Title: buttons[ref.Index].Title,
		Next:  next,
	})
	a.state = next
	a.generation++
	return nil
}

// Screenshot renders the current screen as a PNG.
func (a *App) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.launched {
		return nil, platform.ErrNotLaunched
	}
	return renderPNG(a.state, a.elementsLocked(), a.viewport)
}

// State returns the current screen.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Activations returns every tap delivered so far, oldest first.
func (a *App) Activations() []Activation {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Activation, len(a.activations))
	copy(out, a.activations)
	return out
}

func (a *App) elementsLocked() []model.Element {
	screen, ok := a.model.Screens[a.state]
	if !ok {
		panic(fmt.Sprintf("sim: state %q missing from validated model", a.state))
	}
	return layoutScreen(screen, a.viewport)
}
