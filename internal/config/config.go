package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediasort/internal/errors"
	"mediasort/pkg/types"

	"gopkg.in/yaml.v3"
)

// WatchSettings configures `mediasort watch`.
type WatchSettings struct {
	Include  []string `yaml:"include"`   // Glob patterns a new file's basename must match
	SettleMS int      `yaml:"settle_ms"` // Quiet period before a new file is processed
}

// ToolSettings names the external helpers used by the tool-backed strategies.
type ToolSettings struct {
	Exiftool string `yaml:"exiftool"`
	FFprobe  string `yaml:"ffprobe"`
}

// Config is the read-only configuration shared by every file in a run.
type Config struct {
	Strategy  types.Strategy  `yaml:"strategy"`   // Where the capture date comes from
	Collision types.Collision `yaml:"collision"`  // What to do when the destination exists
	Action    types.Action    `yaml:"action"`     // move, copy or hardlink
	TargetDir string          `yaml:"target_dir"` // Base of the YYYY/MM hierarchy
	DryRun    bool            `yaml:"dry_run"`    // If true, report without touching the filesystem
	Verbose   bool            `yaml:"verbose"`    // Debug logging
	Watch     WatchSettings   `yaml:"watch"`
	Tools     ToolSettings    `yaml:"tools"`
}

// DefaultPath is where LoadConfig looks (~/.config/mediasort/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mediasort", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.NewConfigError("failed to locate home directory", "", err)
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, err)
	}

	if tempCfg.Strategy != "" {
		cfg.Strategy = tempCfg.Strategy
	}
	if tempCfg.Collision != "" {
		cfg.Collision = tempCfg.Collision
	}
	if tempCfg.Action != "" {
		cfg.Action = tempCfg.Action
	}
	if tempCfg.TargetDir != "" {
		cfg.TargetDir = tempCfg.TargetDir
	}
	cfg.DryRun = tempCfg.DryRun
	cfg.Verbose = tempCfg.Verbose

	if len(tempCfg.Watch.Include) > 0 {
		cfg.Watch.Include = tempCfg.Watch.Include
	}
	if tempCfg.Watch.SettleMS != 0 {
		cfg.Watch.SettleMS = tempCfg.Watch.SettleMS
	}
	if tempCfg.Tools.Exiftool != "" {
		cfg.Tools.Exiftool = tempCfg.Tools.Exiftool
	}
	if tempCfg.Tools.FFprobe != "" {
		cfg.Tools.FFprobe = tempCfg.Tools.FFprobe
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", path)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{
		Strategy:  types.StrategyExif,
		Collision: types.CollisionSkip,
		Action:    types.ActionMove,
		TargetDir: ".",
	}
	cfg.Watch.Include = []string{"*"}
	cfg.Watch.SettleMS = 500
	cfg.Tools.Exiftool = "exiftool"
	cfg.Tools.FFprobe = "ffprobe"
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Validate normalizes enum spellings and rejects anything unusable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", nil)
	}

	strategy, err := types.ParseStrategy(string(c.Strategy))
	if err != nil {
		return errors.NewConfigError("invalid strategy", string(c.Strategy), err)
	}
	c.Strategy = strategy

	collision, err := types.ParseCollision(string(c.Collision))
	if err != nil {
		return errors.NewConfigError("invalid collision setting", string(c.Collision), err)
	}
	c.Collision = collision

	action, err := types.ParseAction(string(c.Action))
	if err != nil {
		return errors.NewConfigError("invalid action", string(c.Action), err)
	}
	c.Action = action

	if strings.TrimSpace(c.TargetDir) == "" {
		return errors.NewConfigError("target directory is required", "target_dir", nil)
	}

	if c.Watch.SettleMS < 0 {
		return errors.NewConfigError("settle delay must be >= 0", "watch.settle_ms", nil)
	}
	for i, pattern := range c.Watch.Include {
		if strings.TrimSpace(pattern) == "" {
			return errors.NewConfigError("empty include pattern", "watch.include", errors.Newf("entry %d", i))
		}
	}

	switch c.Strategy {
	case types.StrategyExiftool:
		if strings.TrimSpace(c.Tools.Exiftool) == "" {
			return errors.NewConfigError("exiftool binary is required", "tools.exiftool", nil)
		}
	case types.StrategyFFprobe:
		if strings.TrimSpace(c.Tools.FFprobe) == "" {
			return errors.NewConfigError("ffprobe binary is required", "tools.ffprobe", nil)
		}
	}

	return nil
}

// Settle returns the watch quiet period as a duration.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.Watch.SettleMS) * time.Millisecond
}
