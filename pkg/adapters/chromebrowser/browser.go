// Package chromebrowser provides a render backend implementation using chromedp.
package chromebrowser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/user/promoreel/pkg/ports"
)

// Browser implements ports.Browser using chromedp.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	opts     ports.BrowserOptions
	docPath  string // Scratch HTML file backing the file:// navigation
	launched bool
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Launch starts the browser with the given options.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
	}

	if opts.Headless {
		// Use new headless mode for better compatibility
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.Incognito {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("incognito", true))
	}
	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}

	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		chromedpOpts = append(chromedpOpts,
			chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
			chromedp.Flag("window-size", fmt.Sprintf("%d,%d", opts.ViewportWidth, opts.ViewportHeight)))
	}

	// Flags for server/background/container execution
	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)
	b.opts = opts

	// Viewport emulation keeps the capture size stable regardless of the
	// actual window the platform gives us.
	scale := opts.DeviceScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	if err := chromedp.Run(b.ctx,
		emulation.SetDeviceMetricsOverride(
			int64(opts.ViewportWidth), int64(opts.ViewportHeight), scale, false),
	); err != nil {
		return fmt.Errorf("set device metrics: %w", err)
	}

	b.launched = true
	return nil
}

// LoadDocument loads an HTML document via a scratch file and file://
// navigation, waits for the content to settle and measures the page.
func (b *Browser) LoadDocument(html string) (*ports.PageMetrics, error) {
	if !b.launched {
		return nil, ErrNotLaunched
	}

	dir := b.opts.ScratchDir
	if dir == "" {
		dir = os.TempDir()
	}
	b.docPath = filepath.Join(dir, fmt.Sprintf("document_%d.html", os.Getpid()))
	if err := os.WriteFile(b.docPath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	ctx, cancel := b.opCtx(b.opts.LoadTimeoutMs)
	defer cancel()

	settle := time.Duration(b.opts.SettleDelayMs) * time.Millisecond
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	var title string
	var scrollHeight, scrollWidth int
	if err := chromedp.Run(ctx,
		chromedp.Navigate("file://"+b.docPath),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.Title(&title),
		chromedp.Evaluate(`Math.max(document.body.scrollHeight, document.documentElement.scrollHeight)`, &scrollHeight),
		chromedp.Evaluate(`document.documentElement.scrollWidth`, &scrollWidth),
	); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	return &ports.PageMetrics{
		Title:        title,
		ScrollHeight: scrollHeight,
		ScrollWidth:  scrollWidth,
	}, nil
}

// SetScrollOffset scrolls the viewport and waits for the next paint so
// the following capture sees the applied offset.
func (b *Browser) SetScrollOffset(y int) error {
	if !b.launched {
		return ErrNotLaunched
	}

	ctx, cancel := b.opCtx(b.opts.CaptureTimeoutMs)
	defer cancel()

	script := fmt.Sprintf(`new Promise(resolve => {
		window.scrollTo(0, %d);
		requestAnimationFrame(() => resolve(window.scrollY));
	})`, y)

	var applied float64
	if err := chromedp.Run(ctx,
		chromedp.Evaluate(script, &applied, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	); err != nil {
		return fmt.Errorf("scroll to %d: %w", y, err)
	}
	return nil
}

// CaptureFrame captures the current viewport as a JPEG raster.
func (b *Browser) CaptureFrame() ([]byte, error) {
	if !b.launched {
		return nil, ErrNotLaunched
	}

	ctx, cancel := b.opCtx(b.opts.CaptureTimeoutMs)
	defer cancel()

	quality := b.opts.CaptureQuality
	if quality <= 0 {
		quality = 85
	}

	var data []byte
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, err := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatJpeg).
			WithQuality(int64(quality)).
			Do(ctx)
		if err != nil {
			return err
		}
		data = buf
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the browser and removes the scratch document.
func (b *Browser) Close() error {
	if b.docPath != "" {
		os.Remove(b.docPath)
		b.docPath = ""
	}

	if b.cancel != nil {
		b.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if b.allocCancel != nil {
		b.allocCancel()
	}

	b.launched = false
	return nil
}

// opCtx derives a per-operation timeout context from the browser context.
func (b *Browser) opCtx(timeoutMs int) (context.Context, context.CancelFunc) {
	if timeoutMs <= 0 {
		return context.WithCancel(b.ctx)
	}
	return context.WithTimeout(b.ctx, time.Duration(timeoutMs)*time.Millisecond)
}
