package screenshot

import (
	"log/slog"
	"time"
)

const (
	DefaultTimeout        = 30 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// config holds internal configuration for a Capturer.
type config struct {
	execPath              string
	autoDownload          bool
	timeout               time.Duration
	noSandbox             bool
	headless              bool
	viewportWidth         int
	viewportHeight        int
	userAgent             string
	scale                 float64
	transparentBackground bool
	logger                *slog.Logger
	debug                 bool
}

func defaultConfig() config {
	return config{
		timeout:        DefaultTimeout,
		headless:       true,
		viewportWidth:  DefaultViewportWidth,
		viewportHeight: DefaultViewportHeight,
		scale:          1.0,
		logger:         slog.Default(),
	}
}

// Option configures a [Capturer].
type Option func(*config)

// WithExecPath sets the path to the Chrome or Chromium executable.
// By default, standard install locations are searched.
func WithExecPath(path string) Option {
	return func(c *config) {
		c.execPath = path
	}
}

// WithAutoDownload downloads a known-good Chromium revision (if not already cached) when
// no executable path has been set. The binary is cached in ~/.cache/rod/browser.
func WithAutoDownload(enabled bool) Option {
	return func(c *config) {
		c.autoDownload = enabled
	}
}

// WithTimeout bounds navigation, and separately, the wait for the selector.
// Defaults to 30 seconds. A zero or negative value disables the timeout,
// leaving only the caller’s context in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox(enabled bool) Option {
	return func(c *config) {
		c.noSandbox = enabled
	}
}

// WithHeadless runs the browser without a window. Defaults to true.
func WithHeadless(enabled bool) Option {
	return func(c *config) {
		c.headless = enabled
	}
}

// WithViewport sets the size of the browser window & the emulated viewport.
// Non-positive dimensions are ignored.
func WithViewport(width, height int) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.viewportWidth, c.viewportHeight = width, height
		}
	}
}

// WithUserAgent overrides the browser’s User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithScale sets the device scale factor of the captured image, e.g. 2 for a high-DPI capture.
// Non-positive values are ignored.
func WithScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithTransparentBackground makes the page’s default background transparent, so that logos
// without a background of their own are captured with an alpha channel.
func WithTransparentBackground(enabled bool) Option {
	return func(c *config) {
		c.transparentBackground = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug logs every DevTools protocol message. Very verbose.
func WithDebug(enabled bool) Option {
	return func(c *config) {
		c.debug = enabled
	}
}
