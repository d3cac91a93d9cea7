/*
Package config manages TOML config for wordtree services.

Missing files are created with defaults. A file that fails to decode is
recovered section by section, so one bad value never discards the rest.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Tree   TreeConfig   `toml:"tree"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxWords               int `toml:"max_words"`
	ChunkSize              int `toml:"chunk_size"`
	MinFreqThreshold       int `toml:"min_frequency_threshold"`
	MinFreqShortPrefix     int `toml:"min_frequency_short_prefix"`
	MaxWordCountValidation int `toml:"max_word_count_validation"`
}

// TreeConfig shapes the word tree and its near-match search. Locale is a
// BCP 47 tag used for case folding; empty means $LC_ALL or $LANG, falling
// back to English.
type TreeConfig struct {
	CaseInsensitive  bool   `toml:"case_insensitive"`
	Locale           string `toml:"locale"`
	BalanceAfterLoad bool   `toml:"balance_after_load"`
	FuzzyDistance    int    `toml:"fuzzy_distance"`
	FuzzyTolerance   int    `toml:"fuzzy_tolerance"`
	CacheSize        int    `toml:"cache_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordtree")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordtree")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
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
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordtree/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
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
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			MaxWords:               50000,
			ChunkSize:              10000,
			MinFreqThreshold:       20,
			MinFreqShortPrefix:     24,
			MaxWordCountValidation: 1000000,
		},
		Tree: TreeConfig{
			CaseInsensitive:  true,
			BalanceAfterLoad: true,
			FuzzyDistance:    1,
			FuzzyTolerance:   1,
			CacheSize:        1024,
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
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

// tryPartialParse keeps every section that still decodes on its own.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "tree"); ok {
		extractTreeConfig(section, &config.Tree)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
	if val, ok := utils.ExtractInt64(data, "min_frequency_threshold"); ok {
		dict.MinFreqThreshold = val
	}
	if val, ok := utils.ExtractInt64(data, "min_frequency_short_prefix"); ok {
		dict.MinFreqShortPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_count_validation"); ok {
		dict.MaxWordCountValidation = val
	}
}

func extractTreeConfig(data map[string]any, tree *TreeConfig) {
	if val, ok := utils.ExtractBool(data, "case_insensitive"); ok {
		tree.CaseInsensitive = val
	}
	if val, ok := utils.ExtractString(data, "locale"); ok {
		tree.Locale = val
	}
	if val, ok := utils.ExtractBool(data, "balance_after_load"); ok {
		tree.BalanceAfterLoad = val
	}
	if val, ok := utils.ExtractInt64(data, "fuzzy_distance"); ok {
		tree.FuzzyDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "fuzzy_tolerance"); ok {
		tree.FuzzyTolerance = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		tree.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// ResolveLocale parses a BCP 47 or POSIX locale name such as "tr",
// "pt-BR" or "de_DE.UTF-8". An empty name is read from $LC_ALL, then
// $LANG. Anything unparseable yields English.
func ResolveLocale(name string) language.Tag {
	if name == "" {
		name = os.Getenv("LC_ALL")
	}
	if name == "" {
		name = os.Getenv("LANG")
	}
	name, _, _ = strings.Cut(name, ".")
	name, _, _ = strings.Cut(name, "@")
	if name == "" || name == "C" || name == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		log.Warnf("Unknown locale %q, folding case as English", name)
		return language.English
	}
	return tag
}

// CompleterOptions maps the dictionary and tree sections onto the
// completer's tuning knobs.
func (c *Config) CompleterOptions() suggest.Options {
	return suggest.Options{
		MinFrequency:      c.Dict.MinFreqThreshold,
		MinFrequencyShort: c.Dict.MinFreqShortPrefix,
		FuzzyDistance:     c.Tree.FuzzyDistance,
		FuzzyTolerance:    c.Tree.FuzzyTolerance,
		CaseInsensitive:   c.Tree.CaseInsensitive,
		Locale:            ResolveLocale(c.Tree.Locale),
		CacheSize:         c.Tree.CacheSize,
		BalanceAfterLoad:  c.Tree.BalanceAfterLoad,
	}
}
