// Package web drives a web application in Chromium through playwright-go.
// Importing it registers the "web" backend with internal/platform.
package web

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/mj1618/storeshots/internal/model"
	"github.com/mj1618/storeshots/internal/platform"
	"github.com/playwright-community/playwright-go"
)

const defaultTimeoutMs = 10_000

func init() {
	platform.Register("web", func(opts platform.Options) (platform.Application, error) {
		return New(opts)
	})
}

// App is a browser page implementing platform.Application.
type App struct {
	mu         sync.Mutex
	opts       platform.Options
	pw         *playwright.Playwright
	browser    playwright.Browser
	page       playwright.Page
	generation uint64
}

var _ platform.Application = (*App)(nil)

// New validates the options and returns an unlaunched browser application.
func New(opts platform.Options) (*App, error) {
	if opts.URL == "" {
		return nil, errors.New("web backend requires a url")
	}
	if opts.Viewport == (platform.Viewport{}) {
		opts.Viewport = platform.DefaultViewport
	}
	if err := opts.Viewport.Validate(); err != nil {
		return nil, err
	}
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = defaultTimeoutMs
	}
	return &App{opts: opts}, nil
}

// Launch installs the Chromium driver if needed, starts the browser and
// opens the configured URL. Launching a running application does nothing.
func (a *App) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page != nil {
		return nil
	}

	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return fmt.Errorf("install playwright: %w", err)
	}
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(a.opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("launch browser: %w", err)
	}
	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: a.opts.Viewport.Width, Height: a.opts.Viewport.Height},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return fmt.Errorf("new page: %w", err)
	}
	if _, err := page.Goto(a.opts.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(a.opts.TimeoutMs)),
	}); err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return fmt.Errorf("navigate to %s: %w", a.opts.URL, err)
	}

	a.pw, a.browser, a.page = pw, browser, page
	a.generation++
	return nil
}

// Terminate closes the browser and stops the playwright driver.
func (a *App) Terminate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page == nil {
		return nil
	}
	var errs []error
	if err := a.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	if err := a.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop playwright: %w", err))
	}
	a.pw, a.browser, a.page = nil, nil, nil
	a.generation++
	return errors.Join(errs...)
}

// Buttons returns the enabled elements with the ARIA button role in
// document order.
func (a *App) Buttons(ctx context.Context) ([]model.ElementRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page == nil {
		return nil, platform.ErrNotLaunched
	}
	elements, _, err := a.readButtonsLocked()
	if err != nil {
		return nil, err
	}
	return model.RefsFor(model.FilterButtons(elements), a.generation), nil
}

// Activate clicks the button a ref points at and waits for the page to
// settle. Every click invalidates earlier refs.
func (a *App) Activate(ctx context.Context, ref model.ElementRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page == nil {
		return platform.ErrNotLaunched
	}
	if ref.Generation != a.generation {
		return platform.StaleRef(ref)
	}

	elements, locators, err := a.readButtonsLocked()
	if err != nil {
		return err
	}
	buttons := model.FilterButtons(elements)
	if ref.Index < 0 || ref.Index >= len(buttons) || buttons[ref.Index].ID != ref.ID {
		return platform.StaleRef(ref)
	}

	// IDs are assigned 1..n over every button, enabled or not.
	loc := locators[buttons[ref.Index].ID-1]
	if err := loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(a.opts.TimeoutMs)),
	}); err != nil {
		return fmt.Errorf("click %s: %w", ref, err)
	}
	a.generation++

	if err := a.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(a.opts.TimeoutMs)),
	}); err != nil {
		return fmt.Errorf("wait after click: %w", err)
	}
	return nil
}

// Screenshot captures the viewport as PNG.
func (a *App) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.page == nil {
		return nil, platform.ErrNotLaunched
	}
	data, err := a.page.Screenshot(playwright.PageScreenshotOptions{
		Type:    playwright.ScreenshotTypePng,
		Timeout: playwright.Float(float64(a.opts.TimeoutMs)),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// readButtonsLocked reads every ARIA button on the page as a flat element
// list with IDs 1..n, alongside the matching locators.
func (a *App) readButtonsLocked() ([]model.Element, []playwright.Locator, error) {
	locators, err := a.page.GetByRole(*playwright.AriaRoleButton).All()
	if err != nil {
		return nil, nil, fmt.Errorf("query buttons: %w", err)
	}
	elements := make([]model.Element, 0, len(locators))
	for i, loc := range locators {
		el, err := describeButton(loc)
		if err != nil {
			return nil, nil, fmt.Errorf("read button %d: %w", i, err)
		}
		el.ID = i + 1
		elements = append(elements, el)
	}
	return elements, locators, nil
}

// buttonInfo is the subset of playwright.Locator used to describe a button.
type buttonInfo interface {
	InnerText(options ...playwright.LocatorInnerTextOptions) (string, error)
	GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error)
	BoundingBox(options ...playwright.LocatorBoundingBoxOptions) (*playwright.Rect, error)
	IsEnabled(options ...playwright.LocatorIsEnabledOptions) (bool, error)
}

func describeButton(loc buttonInfo) (model.Element, error) {
	title, err := loc.InnerText()
	if err != nil {
		return model.Element{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		if label, err := loc.GetAttribute("aria-label"); err == nil {
			title = strings.TrimSpace(label)
		}
	}

	el := model.Element{Role: model.MapRole("button"), Title: title}
	if box, err := loc.BoundingBox(); err == nil && box != nil {
		el.Bounds = [4]int{
			int(math.Round(box.X)),
			int(math.Round(box.Y)),
			int(math.Round(box.Width)),
			int(math.Round(box.Height)),
		}
	}
	enabled, err := loc.IsEnabled()
	if err != nil {
		return model.Element{}, err
	}
	if !enabled {
		el.Enabled = &enabled
	}
	return el, nil
}
