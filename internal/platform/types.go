package platform

import "fmt"

// Viewport is the screen size a backend renders at, in pixels.
type Viewport struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// DefaultViewport matches a 6.5" iPhone portrait screenshot at 1x.
var DefaultViewport = Viewport{Width: 414, Height: 896}

// Validate checks that both dimensions are positive.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d: width and height must be positive", v.Width, v.Height)
	}
	return nil
}

// Options configures how a backend creates its application.
type Options struct {
	URL       string   // Page to open (web backend)
	Headless  bool     // Run the browser without a window (web backend)
	AppModel  string   // Path to a YAML screen model (sim backend, empty = built-in)
	Viewport  Viewport // Screen size
	TimeoutMs int      // Per-interaction timeout in milliseconds (0 = backend default)
}
