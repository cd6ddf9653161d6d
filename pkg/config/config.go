/*
Package config manages TOML config for the wordswipe recognizer and its frontends.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordswipe/internal/utils"
	"github.com/bastiangx/wordswipe/pkg/dtw"
	"github.com/charmbracelet/log"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Path cache modes.
const (
	CacheLazy  = "lazy"
	CacheEager = "eager"
)

// Config holds the entire config structure
type Config struct {
	Recognizer RecognizerConfig `toml:"recognizer"`
	Dict       DictConfig       `toml:"dict"`
	Layout     LayoutConfig     `toml:"layout"`
	CLI        CliConfig        `toml:"cli"`
}

// RecognizerConfig has matching options.
type RecognizerConfig struct {
	K           int     `toml:"k"`
	WindowRatio float64 `toml:"window_ratio"`
	Strategy    string  `toml:"strategy"`
	Workers     int     `toml:"workers"`
	YScale      float64 `toml:"y_scale"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path         string  `toml:"path"`
	MaxWords     int     `toml:"max_words"`
	Cache        string  `toml:"cache"`
	CacheSpacing float64 `toml:"cache_spacing"`
}

// LayoutConfig points at a custom key table. Empty means the built-in QWERTY layout.
type LayoutConfig struct {
	Path string `toml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultK     int     `toml:"default_k"`
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. platform config dir (~/.config/wordswipe on linux and macOS)
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := utils.ConfigDirFor(homeDir)
	if status := utils.ProbeDir(primaryPath); status.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordswipe/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Recognizer: RecognizerConfig{
			K:           7,
			WindowRatio: 0.1,
			Strategy:    "combined",
			Workers:     1,
			YScale:      0.4,
		},
		Dict: DictConfig{
			Path:         "data",
			MaxWords:     50000,
			Cache:        CacheEager,
			CacheSpacing: 0,
		},
		CLI: CliConfig{
			DefaultK:     7,
			CanvasWidth:  1000,
			CanvasHeight: 300,
		},
	}
}

// Validate reports the first value the recognizer cannot run with.
func (c *Config) Validate() error {
	r := c.Recognizer
	switch {
	case r.K <= 0:
		return fmt.Errorf("%w: recognizer.k = %d", ErrInvalidConfig, r.K)
	case r.WindowRatio < 0:
		return fmt.Errorf("%w: recognizer.window_ratio = %v", ErrInvalidConfig, r.WindowRatio)
	case r.YScale <= 0:
		return fmt.Errorf("%w: recognizer.y_scale = %v", ErrInvalidConfig, r.YScale)
	case c.Dict.MaxWords < 0:
		return fmt.Errorf("%w: dict.max_words = %d", ErrInvalidConfig, c.Dict.MaxWords)
	case c.Dict.Cache != CacheLazy && c.Dict.Cache != CacheEager:
		return fmt.Errorf("%w: dict.cache = %q", ErrInvalidConfig, c.Dict.Cache)
	case c.CLI.CanvasWidth <= 0 || c.CLI.CanvasHeight <= 0:
		return fmt.Errorf("%w: cli canvas %vx%v", ErrInvalidConfig, c.CLI.CanvasWidth, c.CLI.CanvasHeight)
	}
	if _, err := dtw.ParseStrategy(r.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.IsFile(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value of a file that failed to decode as a whole
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "recognizer"); ok {
		extractRecognizerConfig(section, &config.Recognizer)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "layout"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Layout.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

// extractRecognizerConfig extracts recognizer configuration from a map
func extractRecognizerConfig(data map[string]any, r *RecognizerConfig) {
	if val, ok := utils.ExtractInt64(data, "k"); ok {
		r.K = val
	}
	if val, ok := utils.ExtractFloat(data, "window_ratio"); ok {
		r.WindowRatio = val
	}
	if val, ok := utils.ExtractString(data, "strategy"); ok {
		r.Strategy = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		r.Workers = val
	}
	if val, ok := utils.ExtractFloat(data, "y_scale"); ok {
		r.YScale = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractString(data, "cache"); ok {
		dict.Cache = val
	}
	if val, ok := utils.ExtractFloat(data, "cache_spacing"); ok {
		dict.CacheSpacing = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_k"); ok {
		cli.DefaultK = val
	}
	if val, ok := utils.ExtractFloat(data, "canvas_width"); ok {
		cli.CanvasWidth = val
	}
	if val, ok := utils.ExtractFloat(data, "canvas_height"); ok {
		cli.CanvasHeight = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOML(config, configPath)
}
