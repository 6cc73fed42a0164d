package main

import (
	"context"
	"fmt"
	"log/slog"

	"chimbori.dev/logoscrape/core"
	"chimbori.dev/logoscrape/screenshot"
	"chimbori.dev/logoscrape/thumbnail"
	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
)

// scraper runs the whole pipeline for one logo: capture, normalize, encode, save.
type scraper struct {
	capture func(context.Context, screenshot.Request) ([]byte, error)
	assets  *core.AssetDir
	format  string
}

// scrape returns the absolute path of the saved logo.
// Nothing is written unless every earlier step succeeded.
func (s *scraper) scrape(ctx context.Context, req screenshot.Request, size thumbnail.Size) (string, error) {
	raw, err := s.capture(ctx, req)
	if err != nil {
		return "", err
	}
	slog.Debug("Captured element", "url", req.URL, "selector", req.Selector, "size", humanize.Bytes(uint64(len(raw))))

	img, err := thumbnail.Normalize(raw, size)
	if err != nil {
		return "", fmt.Errorf("normalizing logo from %s: %w", req.URL, err)
	}

	data, err := core.Encode(img, s.format)
	if err != nil {
		return "", fmt.Errorf("encoding logo: %w", err)
	}

	// Prune before writing, so that the new logo is never a candidate.
	if err := s.assets.Prune(); err != nil {
		slog.Warn("Failed to prune logos", tint.Err(err), "dir", s.assets.Root)
	}

	name := core.LogoFilename(req.Host, s.format)
	if existing, err := s.assets.Find(name); err != nil {
		slog.Warn("Failed to read existing logo", tint.Err(err), "path", s.assets.LogoPath(req.Host, s.format))
	} else if existing != nil {
		slog.Info("Replacing existing logo", "path", s.assets.LogoPath(req.Host, s.format), "size", humanize.Bytes(uint64(len(existing))))
	}

	path, err := s.assets.Write(name, data)
	if err != nil {
		return "", fmt.Errorf("saving logo: %w", err)
	}
	s.removeOtherFormats(req.Host)

	slog.Info("Logo saved", "path", path, "dimensions", size, "size", humanize.Bytes(uint64(len(data))))
	return path, nil
}

// removeOtherFormats deletes logos for host saved earlier in a format other than the current one,
// so that each host has a single logo in the directory.
func (s *scraper) removeOtherFormats(host string) {
	for _, format := range []string{core.FormatPNG, core.FormatWebP} {
		if format == s.format {
			continue
		}
		name := core.LogoFilename(host, format)
		existing, err := s.assets.Find(name)
		if err != nil || existing == nil {
			continue
		}
		if err := s.assets.Delete(name); err != nil {
			slog.Warn("Failed to delete stale logo", tint.Err(err), "path", s.assets.LogoPath(host, format))
			continue
		}
		slog.Info("Deleted stale logo", "path", s.assets.LogoPath(host, format))
	}
}
