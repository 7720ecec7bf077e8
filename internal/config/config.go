package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Config holds the CLI settings.
type Config struct {
	InstallDir              string   `json:"install_dir" yaml:"install_dir"`
	LogFile                 string   `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	RuntimeName             string   `json:"runtime_name,omitempty" yaml:"runtime_name,omitempty"`
	RejectSafetyDegradation bool     `json:"reject_safety_degradation,omitempty" yaml:"reject_safety_degradation,omitempty"`
	SuppressStore           string   `json:"suppress_store,omitempty" yaml:"suppress_store,omitempty"`
	RequestGlob             string   `json:"request_glob,omitempty" yaml:"request_glob,omitempty"`
	Defaults                Defaults `json:"defaults" yaml:"defaults"`

	firstRun bool
	path     string
}

// Defaults apply to requests built from flags.
type Defaults struct {
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Timeout       string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	TimeoutButton string `json:"timeout_button,omitempty" yaml:"timeout_button,omitempty"`
	AllowEscape   *bool  `json:"allow_escape,omitempty" yaml:"allow_escape,omitempty"`
}

// TimeoutDuration parses Timeout. An empty value is zero.
func (d Defaults) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(d.Timeout) == "" {
		return 0, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(d.Timeout))
	if err != nil {
		return 0, fmt.Errorf("invalid default timeout %q: %w", d.Timeout, err)
	}
	return v, nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(DefaultInstallDir(), core.ConfigFileName)
}

// Load reads the configuration at path, or DefaultPath when path is empty.
// A missing or empty file yields the defaults. Files ending in .json are
// JSON; anything else is YAML.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	cfg := &Config{InstallDir: DefaultInstallDir(), path: ExpandPath(path)}

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.firstRun = true
			cfg.resolve()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		cfg.firstRun = true
		cfg.resolve()
		return cfg, nil
	}

	if isJSON(cfg.path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		cfg.resolve()
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.resolve()
	if _, err := cfg.Defaults.TimeoutDuration(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) resolve() {
	if strings.TrimSpace(c.InstallDir) == "" {
		c.InstallDir = DefaultInstallDir()
	}
	c.InstallDir = ExpandPath(c.InstallDir)
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = filepath.Join(c.InstallDir, core.AppLogName)
	}
	c.LogFile = ExpandPath(c.LogFile)
	if strings.TrimSpace(c.SuppressStore) == "" {
		c.SuppressStore = filepath.Join(c.InstallDir, core.SuppressName)
	}
	c.SuppressStore = ExpandPath(c.SuppressStore)
	if c.RequestGlob != "" {
		c.RequestGlob = ExpandPath(c.RequestGlob)
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.InstallDir) == "" {
		return errors.New("install directory is required")
	}
	c.resolve()
	path := c.ConfigPath()
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	var (
		payload []byte
		err     error
	)
	if isJSON(path) {
		payload, err = json.MarshalIndent(c, "", "  ")
	} else {
		payload, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	c.firstRun = false
	return nil
}

// FirstRun indicates whether no configuration file existed.
func (c *Config) FirstRun() bool {
	if c == nil {
		return true
	}
	return c.firstRun
}

// ConfigPath returns the full path to the settings file.
func (c *Config) ConfigPath() string {
	if c == nil {
		return ""
	}
	if c.path != "" {
		return c.path
	}
	return filepath.Join(c.InstallDir, core.ConfigFileName)
}

// EnsureDir creates the provided directory if necessary.
func EnsureDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// ExpandPath expands environment variables, ~ and returns an absolute path.
func ExpandPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	expanded := os.ExpandEnv(trimmed)
	if strings.HasPrefix(expanded, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
		}
	}
	expanded = filepath.Clean(expanded)
	if filepath.IsAbs(expanded) {
		return expanded
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return expanded
	}
	return abs
}

// DefaultInstallDir returns the platform-specific configuration root.
func DefaultInstallDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		if runtime.GOOS == "windows" {
			base = os.Getenv("LOCALAPPDATA")
		}
	}
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".config")
		}
	}
	return ExpandPath(filepath.Join(base, core.AppName))
}
