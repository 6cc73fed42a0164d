package screenshot

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser returns the browser executable to launch.
// An empty path means chromedp should search standard locations itself.
func resolveBrowser(cfg config) (string, error) {
	if cfg.execPath != "" {
		return cfg.execPath, nil
	}
	if !cfg.autoDownload {
		return "", nil
	}
	if path, found := launcher.LookPath(); found {
		cfg.logger.Debug("using installed browser", "path", path)
		return path, nil
	}

	cfg.logger.Info("downloading browser")
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("downloading browser: %w", err)
	}
	cfg.logger.Debug("using downloaded browser", "path", path)
	return path, nil
}
