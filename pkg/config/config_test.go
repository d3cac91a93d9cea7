package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestInitConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), again)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
max_limit = 10

[tree]
case_insensitive = false
locale = "tr"
fuzzy_distance = 2
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Server.MaxLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix)
	assert.False(t, cfg.Tree.CaseInsensitive)
	assert.Equal(t, "tr", cfg.Tree.Locale)
	assert.Equal(t, 2, cfg.Tree.FuzzyDistance)
	assert.Equal(t, 1, cfg.Tree.FuzzyTolerance)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
max_limit = "lots"
max_prefix = 30

[dict]
min_frequency_threshold = 5
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Server.MaxLimit, "bad value keeps its default")
	assert.Equal(t, 30, cfg.Server.MaxPrefix)
	assert.Equal(t, 5, cfg.Dict.MinFreqThreshold)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cli]\ndefault_limit = 7\n"), 0o644))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, cfg.CLI.DefaultLimit)
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name  string
		lcAll string
		lang  string
		want  language.Tag
	}{
		{"tr", "", "", language.Turkish},
		{"pt-BR", "", "", language.BrazilianPortuguese},
		{"de_DE.UTF-8", "", "", language.MustParse("de-DE")},
		{"", "tr_TR.UTF-8", "en_US.UTF-8", language.MustParse("tr-TR")},
		{"", "", "az_AZ@latin", language.MustParse("az-AZ")},
		{"", "", "C", language.English},
		{"", "", "", language.English},
		{"not a locale!", "", "", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.name+tt.lcAll+tt.lang, func(t *testing.T) {
			t.Setenv("LC_ALL", tt.lcAll)
			t.Setenv("LANG", tt.lang)
			assert.Equal(t, tt.want, ResolveLocale(tt.name))
		})
	}
}

func TestCompleterOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tree.Locale = "tr"
	opts := cfg.CompleterOptions()
	assert.Equal(t, 20, opts.MinFrequency)
	assert.Equal(t, 24, opts.MinFrequencyShort)
	assert.Equal(t, language.Turkish, opts.Locale)
	assert.True(t, opts.CaseInsensitive)
	assert.True(t, opts.BalanceAfterLoad)
}
