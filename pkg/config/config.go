/*
Package config manages the TOML config for wordtrie.

Loading never fails hard: a file that does not decode is parsed section by
section, and anything still unreadable falls back to built-in defaults.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Trie   TrieConfig   `toml:"trie"`
	Rank   RankConfig   `toml:"rank"`
	Vocab  VocabConfig  `toml:"vocab"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// TrieConfig holds indexing and fuzzy search options.
type TrieConfig struct {
	PrefixMode      string `toml:"prefix_mode"`
	MaxEditDistance int    `toml:"max_edit_distance"`
}

// RankConfig holds ranking options.
type RankConfig struct {
	CandidateMultiplier int `toml:"candidate_multiplier"`
	DefaultLimit        int `toml:"default_limit"`
}

// VocabConfig sizes the vocabulary filter and caps corpus loading.
type VocabConfig struct {
	ExpectedWords     int     `toml:"expected_words"`
	FalsePositiveRate float64 `toml:"false_positive_rate"`
	MaxWords          int     `toml:"max_words"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordtrie
// 2. ~/Library/Application Support/wordtrie (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordtrie")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordtrie")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
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
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
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
	opts := suggest.DefaultOptions()
	return &Config{
		Trie: TrieConfig{
			PrefixMode:      opts.PrefixMode.String(),
			MaxEditDistance: opts.MaxEditDistance,
		},
		Rank: RankConfig{
			CandidateMultiplier: opts.CandidateMultiplier,
			DefaultLimit:        opts.DefaultLimit,
		},
		Vocab: VocabConfig{
			ExpectedWords:     opts.ExpectedWords,
			FalsePositiveRate: opts.FalsePositiveRate,
			MaxWords:          0,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, keeping defaults for missing keys
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse recovers whatever well-typed keys a broken file still has
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "trie"); ok {
		extractTrieConfig(section, &config.Trie)
	}
	if section, ok := utils.ExtractSection(tempConfig, "rank"); ok {
		extractRankConfig(section, &config.Rank)
	}
	if section, ok := utils.ExtractSection(tempConfig, "vocab"); ok {
		extractVocabConfig(section, &config.Vocab)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.Validate()
	return config, nil
}

func extractTrieConfig(data map[string]any, t *TrieConfig) {
	if val, ok := utils.ExtractString(data, "prefix_mode"); ok {
		t.PrefixMode = val
	}
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		t.MaxEditDistance = val
	}
}

func extractRankConfig(data map[string]any, r *RankConfig) {
	if val, ok := utils.ExtractInt64(data, "candidate_multiplier"); ok {
		r.CandidateMultiplier = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		r.DefaultLimit = val
	}
}

func extractVocabConfig(data map[string]any, v *VocabConfig) {
	if val, ok := utils.ExtractInt64(data, "expected_words"); ok {
		v.ExpectedWords = val
	}
	if val, ok := utils.ExtractFloat64(data, "false_positive_rate"); ok {
		v.FalsePositiveRate = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		v.MaxWords = val
	}
}

// extractServerConfig extracts server configuration from a map
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

// extractCliConfig extracts CLI config from a map
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

// Validate replaces out-of-range values with their defaults.
func (c *Config) Validate() {
	d := DefaultConfig()
	if _, ok := trie.ParseMode(c.Trie.PrefixMode); !ok {
		log.Warnf("Unknown prefix_mode %q, using %q", c.Trie.PrefixMode, d.Trie.PrefixMode)
		c.Trie.PrefixMode = d.Trie.PrefixMode
	}
	if c.Trie.MaxEditDistance < 0 {
		c.Trie.MaxEditDistance = d.Trie.MaxEditDistance
	}
	if c.Rank.CandidateMultiplier < 1 {
		c.Rank.CandidateMultiplier = d.Rank.CandidateMultiplier
	}
	if c.Rank.DefaultLimit < 1 {
		c.Rank.DefaultLimit = d.Rank.DefaultLimit
	}
	if c.Vocab.ExpectedWords < 1 {
		c.Vocab.ExpectedWords = d.Vocab.ExpectedWords
	}
	if c.Vocab.FalsePositiveRate <= 0 || c.Vocab.FalsePositiveRate >= 1 {
		c.Vocab.FalsePositiveRate = d.Vocab.FalsePositiveRate
	}
	if c.Vocab.MaxWords < 0 {
		c.Vocab.MaxWords = 0
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = d.Server.MaxLimit
	}
	if c.Server.MinPrefix < 1 {
		c.Server.MinPrefix = d.Server.MinPrefix
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		c.Server.MaxPrefix = max(d.Server.MaxPrefix, c.Server.MinPrefix)
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = d.CLI.DefaultLimit
	}
}

// CompleterOptions converts the config into options for suggest.NewCompleter.
func (c *Config) CompleterOptions() suggest.Options {
	opts := suggest.DefaultOptions()
	if mode, ok := trie.ParseMode(c.Trie.PrefixMode); ok {
		opts.PrefixMode = mode
	}
	opts.MaxEditDistance = c.Trie.MaxEditDistance
	opts.CandidateMultiplier = c.Rank.CandidateMultiplier
	opts.DefaultLimit = c.Rank.DefaultLimit
	opts.ExpectedWords = c.Vocab.ExpectedWords
	opts.FalsePositiveRate = c.Vocab.FalsePositiveRate
	return opts
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
