// Package playwrightbrowser provides a render backend implementation using
// playwright-go. It requires the Playwright driver and browsers to be
// installed (`playwright install chromium`).
package playwrightbrowser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/user/promoreel/pkg/ports"
)

// ErrNotLaunched is returned when browser methods are called before Launch.
var ErrNotLaunched = errors.New("playwrightbrowser: browser not launched")

// Browser implements ports.Browser using playwright-go.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	opts    ports.BrowserOptions
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Launch starts a Chromium instance through the Playwright driver.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright driver: %w", err)
	}
	b.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return fmt.Errorf("launch chromium: %w", err)
	}
	b.browser = browser

	pageOpts := playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	}
	if opts.DeviceScaleFactor > 0 {
		pageOpts.DeviceScaleFactor = playwright.Float(opts.DeviceScaleFactor)
	}
	if opts.UserAgent != "" {
		pageOpts.UserAgent = playwright.String(opts.UserAgent)
	}

	page, err := browser.NewPage(pageOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("new page: %w", err)
	}
	b.page = page
	b.opts = opts

	return nil
}

// LoadDocument sets the page content directly and measures the document.
func (b *Browser) LoadDocument(html string) (*ports.PageMetrics, error) {
	if b.page == nil {
		return nil, ErrNotLaunched
	}

	contentOpts := playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}
	if b.opts.LoadTimeoutMs > 0 {
		contentOpts.Timeout = playwright.Float(float64(b.opts.LoadTimeoutMs))
	}
	if err := b.page.SetContent(html, contentOpts); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}

	if b.opts.SettleDelayMs > 0 {
		time.Sleep(time.Duration(b.opts.SettleDelayMs) * time.Millisecond)
	}

	title, err := b.page.Title()
	if err != nil {
		return nil, fmt.Errorf("page title: %w", err)
	}

	height, err := b.evalInt(`Math.max(document.body.scrollHeight, document.documentElement.scrollHeight)`)
	if err != nil {
		return nil, fmt.Errorf("measure scroll height: %w", err)
	}
	width, err := b.evalInt(`document.documentElement.scrollWidth`)
	if err != nil {
		return nil, fmt.Errorf("measure scroll width: %w", err)
	}

	return &ports.PageMetrics{
		Title:        title,
		ScrollHeight: height,
		ScrollWidth:  width,
	}, nil
}

// SetScrollOffset scrolls the viewport and waits for the next paint.
func (b *Browser) SetScrollOffset(y int) error {
	if b.page == nil {
		return ErrNotLaunched
	}

	script := `y => new Promise(resolve => {
		window.scrollTo(0, y);
		requestAnimationFrame(() => resolve(window.scrollY));
	})`
	if _, err := b.page.Evaluate(script, y); err != nil {
		return fmt.Errorf("scroll to %d: %w", y, err)
	}
	return nil
}

// CaptureFrame captures the current viewport as a JPEG raster.
func (b *Browser) CaptureFrame() ([]byte, error) {
	if b.page == nil {
		return nil, ErrNotLaunched
	}

	quality := b.opts.CaptureQuality
	if quality <= 0 {
		quality = 85
	}

	shotOpts := playwright.PageScreenshotOptions{
		Type:    playwright.ScreenshotTypeJpeg,
		Quality: playwright.Int(quality),
	}
	if b.opts.CaptureTimeoutMs > 0 {
		shotOpts.Timeout = playwright.Float(float64(b.opts.CaptureTimeoutMs))
	}

	data, err := b.page.Screenshot(shotOpts)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the browser and the Playwright driver.
func (b *Browser) Close() error {
	var firstErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.browser = nil
		b.page = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.pw = nil
	}
	return firstErr
}

// evalInt evaluates a script that yields a number. The driver returns
// numbers as int or float64 depending on their value.
func (b *Browser) evalInt(script string) (int, error) {
	v, err := b.page.Evaluate(script)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected evaluate result %T", v)
	}
}
