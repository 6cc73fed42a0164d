package conf

// App-specific configuration structs & data.
// Lives in a package of its own so that main can assemble it without other packages depending on main.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var AppName = "logoscrape"

// LogoDirEnv names the environment variable that overrides the output directory.
const LogoDirEnv = "LOGO_DIR"

const (
	defaultOutputDir = "~/Pictures/logo_scrape"
	defaultFormat    = "png"
	defaultTimeout   = 30 * time.Second
	defaultScale     = 1.0
	defaultWidth     = 1280
	defaultHeight    = 720
)

type AppConfig struct {
	ConfigFile string `yaml:"-"` // Absolute path of the file this was read from; empty if none was found.
	Output     struct {
		Dir     string `yaml:"dir"`
		Format  string `yaml:"format"`
		MaxSize int64  `yaml:"max-size"`
	} `yaml:"output"`
	Browser struct {
		ExecPath              string        `yaml:"exec-path"`
		AutoDownload          bool          `yaml:"auto-download"`
		NoSandbox             bool          `yaml:"no-sandbox"`
		Headless              *bool         `yaml:"headless"`
		Timeout               time.Duration `yaml:"timeout"`
		Scale                 float64       `yaml:"scale"`
		UserAgent             string        `yaml:"user-agent"`
		TransparentBackground bool          `yaml:"transparent-background"`
		Viewport              struct {
			Width  int `yaml:"width"`
			Height int `yaml:"height"`
		} `yaml:"viewport"`
	} `yaml:"browser"`
	Debug bool `yaml:"debug"`
}

// DefaultConfigFile returns where the config file is looked for when none is given:
// `logoscrape/logoscrape.yml` in the user’s config directory (e.g. ~/.config on Linux).
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return AppName + ".yml"
	}
	return filepath.Join(dir, AppName, AppName+".yml")
}

// ReadConfig reads configuration from the YAML file at configYmlFile, then applies defaults
// and the LOGO_DIR environment variable.
//
// If configYmlFile is empty, [DefaultConfigFile] is used, and it is fine for it not to exist.
// A file that was asked for explicitly, however, must exist.
func ReadConfig(configYmlFile string) (AppConfig, error) {
	c := &AppConfig{}

	explicit := configYmlFile != ""
	if !explicit {
		configYmlFile = DefaultConfigFile()
	}

	configYmlPath, err := filepath.Abs(configYmlFile)
	if err != nil {
		return *c, fmt.Errorf("Failed to get path to config file: %w", err)
	}

	buf, err := os.ReadFile(configYmlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(buf, c); err != nil {
			return *c, fmt.Errorf("Failed to parse config %s: %w", configYmlPath, err)
		}
		c.ConfigFile = configYmlPath
	case !explicit && errors.Is(err, fs.ErrNotExist):
		slog.Debug("No config file found, using defaults", "path", configYmlPath)
	default:
		return *c, fmt.Errorf("Failed to read config file: %w", err)
	}

	if err := setDefaults(c); err != nil {
		return *c, err
	}
	printConfig(c)
	return *c, nil
}

// Headless reports whether the browser should run without a window (the default).
func (c *AppConfig) Headless() bool {
	return c.Browser.Headless == nil || *c.Browser.Headless
}

func setDefaults(c *AppConfig) error {
	if dir := os.Getenv(LogoDirEnv); dir != "" {
		c.Output.Dir = dir
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaultOutputDir
	}
	dir, err := ExpandHome(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("Failed to resolve output directory: %w", err)
	}
	c.Output.Dir = dir

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultFormat
	case "png", "webp":
	default:
		return fmt.Errorf("Unsupported output format %q, must be png or webp", c.Output.Format)
	}

	// Headless by default; a visible window is only useful when debugging selectors.
	if c.Browser.Headless == nil {
		enabled := true
		c.Browser.Headless = &enabled
	}
	if c.Browser.Timeout == 0 {
		c.Browser.Timeout = defaultTimeout
	}
	if c.Browser.Scale <= 0 {
		c.Browser.Scale = defaultScale
	}
	if c.Browser.Viewport.Width <= 0 || c.Browser.Viewport.Height <= 0 {
		c.Browser.Viewport.Width, c.Browser.Viewport.Height = defaultWidth, defaultHeight
	}
	return nil
}

// ExpandHome replaces a leading “~” in path with the current user’s home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// printConfig dumps the effective configuration in debug mode, and warns about unsafe settings, just as FYI.
func printConfig(c *AppConfig) {
	if c.Debug {
		json, _ := json.MarshalIndent(*c, "", "\t")
		fmt.Fprintln(os.Stderr, string(json))
		slog.Warn("Debug mode is enabled")
	}
	if c.Browser.NoSandbox {
		slog.Warn("Chrome sandbox is disabled; only do this inside a container")
	}
	if c.Browser.Timeout < 0 {
		slog.Warn("Browser timeout is disabled; a page that never loads will hang until interrupted")
	}
}
