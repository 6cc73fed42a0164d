package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	nativewebp "github.com/HugoSmits86/nativewebp"

	"chimbori.dev/logoscrape/conf"
	"chimbori.dev/logoscrape/core"
	"chimbori.dev/logoscrape/screenshot"
	"chimbori.dev/logoscrape/thumbnail"
)

// fakeCapture returns a transparent PNG of the given size with a red square in the middle.
func fakeCapture(t *testing.T, w, h int) func(context.Context, screenshot.Request) ([]byte, error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := h / 4; y < 3*h/4; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return func(context.Context, screenshot.Request) ([]byte, error) {
		return buf.Bytes(), nil
	}
}

func mustInputs(t *testing.T, pageUrl, size string) (screenshot.Request, thumbnail.Size) {
	t.Helper()
	req, target, err := collectInputs(inputs{url: pageUrl, selector: "#logo", size: size}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return req, target
}

func TestScrape_PNG(t *testing.T) {
	dir := t.TempDir()
	s := &scraper{
		capture: fakeCapture(t, 400, 100),
		assets:  core.NewAssetDir(dir),
		format:  core.FormatPNG,
	}
	req, size := mustInputs(t, "https://example.com:8080/about", "100x100")

	path, err := s.scrape(context.Background(), req, size)
	if err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}
	if want := filepath.Join(dir, "example.com_8080_logo.png"); path != want {
		t.Errorf("Expected path to be %q, got %q", want, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Saved logo is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("Expected 100x100, got %dx%d", b.Dx(), b.Dy())
	}
	// Letterbox bands are white.
	if r, g, b, a := img.At(50, 5).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("Expected white at top band, got %v", img.At(50, 5))
	}
	if data[25] != 2 {
		t.Errorf("Expected RGB PNG (color type 2), got %d", data[25])
	}
}

func TestScrape_WebP(t *testing.T) {
	dir := t.TempDir()
	s := &scraper{
		capture: fakeCapture(t, 60, 60),
		assets:  core.NewAssetDir(dir),
		format:  core.FormatWebP,
	}
	req, size := mustInputs(t, "https://bücher.de", "32x32")

	path, err := s.scrape(context.Background(), req, size)
	if err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}
	if filepath.Base(path) != "xn--bcher-kva.de_logo.webp" {
		t.Errorf("Unexpected file name: %q", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := nativewebp.Decode(f)
	if err != nil {
		t.Fatalf("Saved logo is not a WebP: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("Expected 32x32, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestScrape_ReplacesExistingLogo(t *testing.T) {
	dir := t.TempDir()
	assets := core.NewAssetDir(dir)
	req, _ := mustInputs(t, "https://example.com", "10x10")

	first := &scraper{capture: fakeCapture(t, 40, 40), assets: assets, format: core.FormatPNG}
	path, err := first.scrape(context.Background(), req, thumbnail.Size{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}

	second := &scraper{capture: fakeCapture(t, 40, 40), assets: assets, format: core.FormatPNG}
	again, err := second.scrape(context.Background(), req, thumbnail.Size{Width: 30, Height: 20})
	if err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}
	if again != path {
		t.Errorf("Expected the same path %q, got %q", path, again)
	}

	data, err := assets.Find(filepath.Base(path))
	if err != nil || data == nil {
		t.Fatalf("Expected saved logo, got %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("Expected the new 30x20 logo, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestScrape_RemovesOtherFormat(t *testing.T) {
	dir := t.TempDir()
	assets := core.NewAssetDir(dir)
	req, size := mustInputs(t, "https://example.com", "10x10")

	pngScraper := &scraper{capture: fakeCapture(t, 20, 20), assets: assets, format: core.FormatPNG}
	if _, err := pngScraper.scrape(context.Background(), req, size); err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}

	webpScraper := &scraper{capture: fakeCapture(t, 20, 20), assets: assets, format: core.FormatWebP}
	path, err := webpScraper.scrape(context.Background(), req, size)
	if err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}
	if filepath.Base(path) != "example.com_logo.webp" {
		t.Errorf("Unexpected file name: %q", filepath.Base(path))
	}

	if exists, _ := core.FileExists(assets.LogoPath(req.Host, core.FormatPNG)); exists {
		t.Error("Expected the PNG logo to be deleted once a WebP logo was saved")
	}
	if exists, _ := core.FileExists(assets.LogoPath(req.Host, core.FormatWebP)); !exists {
		t.Error("Expected the WebP logo to exist")
	}

	// Logos of other hosts are left alone.
	other, _ := mustInputs(t, "https://other.example", "10x10")
	if _, err := pngScraper.scrape(context.Background(), other, size); err != nil {
		t.Fatalf("scrape() failed: %v", err)
	}
	if exists, _ := core.FileExists(assets.LogoPath(req.Host, core.FormatWebP)); !exists {
		t.Error("Expected the WebP logo of example.com to survive")
	}
}

func TestScrape_NoOutputOnFailure(t *testing.T) {
	captureErr := &screenshot.Error{Kind: screenshot.ErrSelectorTimeout, URL: "https://example.com", Selector: "#logo"}
	tests := []struct {
		name    string
		capture func(context.Context, screenshot.Request) ([]byte, error)
		wantErr error
	}{
		{
			name: "capture fails",
			capture: func(context.Context, screenshot.Request) ([]byte, error) {
				return nil, captureErr
			},
			wantErr: screenshot.ErrSelectorTimeout,
		},
		{
			name: "not an image",
			capture: func(context.Context, screenshot.Request) ([]byte, error) {
				return []byte("<html>"), nil
			},
			wantErr: thumbnail.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "logos")
			s := &scraper{capture: tt.capture, assets: core.NewAssetDir(dir), format: core.FormatPNG}
			req, size := mustInputs(t, "https://example.com", "10x10")

			_, err := s.scrape(context.Background(), req, size)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got: %v", tt.wantErr, err)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("Expected no output directory after failure, got: %v", err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var config conf.AppConfig
	config.Output.Dir = "/from/config"
	config.Output.Format = "png"

	if err := applyFlags(&config, "~/logos", "webp", true); err != nil {
		t.Fatalf("applyFlags() failed: %v", err)
	}
	if want := filepath.Join(home, "logos"); config.Output.Dir != want {
		t.Errorf("Expected Output.Dir to be %q, got %q", want, config.Output.Dir)
	}
	if config.Output.Format != "webp" || !config.Debug {
		t.Errorf("Unexpected config: %+v", config)
	}

	if err := applyFlags(&config, "", "", false); err != nil {
		t.Fatalf("applyFlags() failed: %v", err)
	}
	if config.Output.Format != "webp" || !config.Debug {
		t.Error("Expected empty flags to leave config alone")
	}

	if err := applyFlags(&config, "", "jpeg", false); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

func TestCaptureOptions(t *testing.T) {
	t.Setenv(conf.LogoDirEnv, t.TempDir())
	config, err := conf.ReadConfig(filepath.Join("testdata", "logoscrape.yml"))
	if err != nil {
		t.Fatalf("ReadConfig() failed: %v", err)
	}
	if opts := captureOptions(config); len(opts) == 0 {
		t.Error("Expected capture options")
	}
}
