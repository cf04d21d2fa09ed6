package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes configPath into config. Keys config has no field for
// are logged and otherwise ignored.
func LoadTOMLFile(configPath string, config any) error {
	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Ignoring unknown config key %q in %s", key.String(), configPath)
	}
	return nil
}

// ParseTOMLWithRecovery decodes configPath into a generic map so that well
// typed sections can be salvaged from a file the struct decode rejected.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data := make(map[string]any)
	if _, err := toml.DecodeFile(configPath, &data); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return data, nil
}

func extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	return extract[map[string]any](data, sectionName)
}

// ExtractInt64 reads a TOML integer as an int.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	val, ok := extract[int64](data, key)
	return int(val), ok
}

func ExtractBool(data map[string]any, key string) (bool, bool) {
	return extract[bool](data, key)
}

// ExtractFloat64 reads a TOML float, accepting integers too.
func ExtractFloat64(data map[string]any, key string) (float64, bool) {
	if val, ok := extract[int64](data, key); ok {
		return float64(val), true
	}
	return extract[float64](data, key)
}

func ExtractString(data map[string]any, key string) (string, bool) {
	return extract[string](data, key)
}
