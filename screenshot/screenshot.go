// Package screenshot captures a single element of a web page as a PNG, using headless Chrome.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// closeTimeout bounds the graceful shutdown of the browser after a capture.
const closeTimeout = 5 * time.Second

// Capturer holds browser configuration shared by captures.
// Each call to [Capturer.Capture] launches (and tears down) its own browser process,
// so a Capturer is safe for concurrent use and no state leaks between pages.
type Capturer struct {
	cfg config
}

func New(opts ...Option) *Capturer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Capturer{cfg: cfg}
}

// Capture is shorthand for New(opts...).Capture(ctx, req).
func Capture(ctx context.Context, req Request, opts ...Option) ([]byte, error) {
	return New(opts...).Capture(ctx, req)
}

// Capture loads the page, waits until an element matches the selector, and returns a PNG of
// the first matching element, cropped to its bounding box.
//
// Errors are of type *Error, whose Kind tells navigation failures, selector timeouts & capture failures apart.
// A Request that was not built with [NewRequest] may also be rejected with a *validation.Error.
func (c *Capturer) Capture(ctx context.Context, req Request) (png []byte, err error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	logger := c.cfg.logger.With("url", req.URL, "selector", req.Selector)
	logger.Debug("capturing element")

	execPath, err := resolveBrowser(c.cfg)
	if err != nil {
		return nil, newError(ErrNavigation, req, err)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions(execPath)...)
	defer allocCancel()

	var ctxOpts []chromedp.ContextOption
	if c.cfg.debug {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(log.Printf))
	}
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, ctxOpts...)
	defer browserCancel()

	// Start the browser eagerly so launch errors are reported as such.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, newError(ErrNavigation, req, fmt.Errorf("starting browser: %w", err))
	}

	// Graceful close, only once a browser is running; browserCancel cleans up whatever this leaves behind.
	// Calling both for a browser that never started blocks forever.
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(browserCtx, closeTimeout)
		defer closeCancel()
		if err := chromedp.Cancel(closeCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("closing browser", "error", err)
		}
	}()

	if err := chromedp.Run(browserCtx, c.setupActions()...); err != nil {
		return nil, newError(ErrNavigation, req, fmt.Errorf("configuring page: %w", err))
	}

	// Navigate.
	navCtx, navCancel := c.withTimeout(browserCtx)
	resp, err := chromedp.RunResponse(navCtx, chromedp.Navigate(req.URL))
	navCancel()
	if err != nil {
		return nil, newError(ErrNavigation, req, err)
	}
	if resp != nil {
		logger.Debug("page loaded", "status", resp.Status, "mimeType", resp.MimeType)
	}

	// Wait for the element.
	waitCtx, waitCancel := c.withTimeout(browserCtx)
	err = chromedp.Run(waitCtx, chromedp.WaitReady(req.Selector, chromedp.ByQuery))
	waitCancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, newError(ErrSelectorTimeout, req, err)
		}
		return nil, newError(ErrNavigation, req, err)
	}

	// Capture.
	var buf []byte
	if err := chromedp.Run(browserCtx, captureFirst(req.Selector, c.cfg.scale, &buf)); err != nil {
		return nil, newError(ErrCapture, req, err)
	}
	if len(buf) == 0 {
		return nil, newError(ErrCapture, req, errors.New("browser returned an empty image"))
	}

	logger.Debug("captured element", "bytes", len(buf))
	return buf, nil
}

// captureFirst screenshots the first node matching sel.
// Unlike chromedp.Screenshot, this does not wait for the node to become visible:
// an element without a box fails right away instead of running into a timeout.
func captureFirst(sel string, scale float64, picbuf *[]byte) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var nodes []*cdp.Node
		if err := chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx); err != nil {
			return err
		}
		if len(nodes) == 0 {
			return fmt.Errorf("selector %q did not match any element", sel)
		}

		box, err := dom.GetBoxModel().WithNodeID(nodes[0].NodeID).Do(ctx)
		if err != nil {
			return fmt.Errorf("element has no layout box: %w", err)
		}
		if box.Width <= 0 || box.Height <= 0 {
			return fmt.Errorf("element has zero size: %dx%d", box.Width, box.Height)
		}

		return chromedp.ScreenshotNodes(nodes[:1], scale, picbuf).Do(ctx)
	})
}

func (c *Capturer) allocatorOptions(execPath string) []chromedp.ExecAllocatorOption {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("headless", c.cfg.headless),
		chromedp.WindowSize(c.cfg.viewportWidth, c.cfg.viewportHeight),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	if c.cfg.noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if c.cfg.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.cfg.userAgent))
	}
	return opts
}

func (c *Capturer) setupActions() []chromedp.Action {
	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(c.cfg.viewportWidth), int64(c.cfg.viewportHeight)),
	}
	if c.cfg.transparentBackground {
		actions = append(actions, emulation.SetDefaultBackgroundColorOverride().
			WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}))
	}
	return actions
}

func (c *Capturer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.timeout)
}
