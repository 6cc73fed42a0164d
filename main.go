package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chimbori.dev/logoscrape/conf"
	"chimbori.dev/logoscrape/core"
	"chimbori.dev/logoscrape/screenshot"
	"github.com/lmittmann/tint"
)

const timeFormat = "2006-01-02 15:04:05.000"

func main() {
	tintHandler := tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: timeFormat})
	slog.SetDefault(slog.New(tintHandler))

	configYmlFlag := flag.String("config", "", "path to logoscrape.yml (default "+conf.DefaultConfigFile()+")")
	urlFlag := flag.String("url", "", "URL of the company page to capture the logo from")
	selectorFlag := flag.String("selector", "", "CSS selector of the logo element")
	sizeFlag := flag.String("size", "", "size of the saved logo, e.g. 100x100")
	outFlag := flag.String("out", "", "directory to save the logo into; overrides config & $"+conf.LogoDirEnv)
	formatFlag := flag.String("format", "", "image format of the saved logo: png or webp")
	debugFlag := flag.Bool("debug", false, "print debug logs")
	flag.Parse()

	if *debugFlag {
		setDebugLogging()
	}

	config, err := conf.ReadConfig(*configYmlFlag)
	if err != nil {
		slog.Error("Failed to read config", tint.Err(err))
		os.Exit(1)
	}
	if err := applyFlags(&config, *outFlag, *formatFlag, *debugFlag); err != nil {
		slog.Error("Invalid flags", tint.Err(err))
		flag.PrintDefaults()
		os.Exit(1)
	}

	// If debug mode was turned on in the config file, print logs at DEBUG or above.
	if config.Debug {
		setDebugLogging()
	}

	// Ctrl-C cancels the capture in progress; deferred browser teardown still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, config, inputs{url: *urlFlag, selector: *selectorFlag, size: *sizeFlag})
	stop()

	if err != nil {
		var missing *missingInputError
		if errors.As(err, &missing) {
			slog.Error("Missing input, and no terminal to prompt for it", tint.Err(err))
			flag.PrintDefaults()
		} else {
			slog.Error("Failed to save logo", tint.Err(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, config conf.AppConfig, flags inputs) error {
	var prompter *core.Prompter
	if core.IsInteractive() {
		prompter = core.NewPrompter(os.Stdin, os.Stdout)
	}
	req, size, err := collectInputs(flags, prompter)
	if err != nil {
		return err
	}

	s := &scraper{
		capture: screenshot.New(captureOptions(config)...).Capture,
		assets:  core.NewAssetDir(config.Output.Dir, core.WithMaxSize(config.Output.MaxSize)),
		format:  config.Output.Format,
	}
	path, err := s.scrape(ctx, req, size)
	if err != nil {
		return err
	}

	fmt.Printf("Logo has been saved into %s.\n", path)
	return nil
}

// applyFlags lets command-line flags override the config file & environment.
func applyFlags(config *conf.AppConfig, out, format string, debug bool) error {
	if out != "" {
		dir, err := conf.ExpandHome(out)
		if err != nil {
			return err
		}
		config.Output.Dir = dir
	}
	switch format {
	case "":
	case core.FormatPNG, core.FormatWebP:
		config.Output.Format = format
	default:
		return fmt.Errorf("unsupported format %q, must be %s or %s", format, core.FormatPNG, core.FormatWebP)
	}
	if debug {
		config.Debug = true
	}
	return nil
}

func captureOptions(config conf.AppConfig) []screenshot.Option {
	b := config.Browser
	return []screenshot.Option{
		screenshot.WithExecPath(b.ExecPath),
		screenshot.WithAutoDownload(b.AutoDownload),
		screenshot.WithNoSandbox(b.NoSandbox),
		screenshot.WithHeadless(config.Headless()),
		screenshot.WithTimeout(b.Timeout),
		screenshot.WithScale(b.Scale),
		screenshot.WithUserAgent(b.UserAgent),
		screenshot.WithTransparentBackground(b.TransparentBackground),
		screenshot.WithViewport(b.Viewport.Width, b.Viewport.Height),
		screenshot.WithDebug(config.Debug),
	}
}

func setDebugLogging() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: timeFormat,
	})))
}
