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
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", configPath, undecoded)
	}
	return nil
}

// ParseTOMLWithRecovery decodes configPath without a schema, so that
// sections can be picked out one at a time after a typed decode failed.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return raw, nil
}

func extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractSection returns the table called sectionName.
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	return extract[map[string]any](data, sectionName)
}

// ExtractInt64 returns an integer key. TOML integers decode as int64.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	val, ok := extract[int64](data, key)
	return int(val), ok
}

// ExtractBool returns a boolean key.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	return extract[bool](data, key)
}

// ExtractString returns a string key.
func ExtractString(data map[string]any, key string) (string, bool) {
	return extract[string](data, key)
}
