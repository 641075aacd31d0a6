package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnalysisConfig(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	assert.Equal(t, "Go", cfg.Extensions["go"])
	assert.Equal(t, "TypeScript", cfg.Extensions["ts"])
	assert.Equal(t, "Docker", cfg.Filenames["dockerfile"])
	assert.Contains(t, cfg.ProductionDirectories, "src")
	assert.Contains(t, cfg.TestDirectories, "__tests__")
	assert.Empty(t, cfg.Aliases)
}

func TestAnalysisConfigMerge(t *testing.T) {
	base := DefaultAnalysisConfig()

	t.Run("Map entries overlay key by key", func(t *testing.T) {
		merged := base.MergeWith(&AnalysisConfig{
			Extensions: map[string]string{"zig": "Zig", "go": "Golang"},
		})

		assert.Equal(t, "Zig", merged.Extensions["zig"])
		assert.Equal(t, "Golang", merged.Extensions["go"])
		// Untouched defaults survive
		assert.Equal(t, "Python", merged.Extensions["py"])
	})

	t.Run("Empty lists keep defaults", func(t *testing.T) {
		merged := base.MergeWith(&AnalysisConfig{})
		assert.Equal(t, base.ProductionDirectories, merged.ProductionDirectories)
		assert.Equal(t, base.TestDirectories, merged.TestDirectories)
	})

	t.Run("Non-empty lists replace defaults", func(t *testing.T) {
		merged := base.MergeWith(&AnalysisConfig{
			TestDirectories: []string{"qa"},
			IncludeUsers:    []string{"alice@work.com"},
		})
		assert.Equal(t, []string{"qa"}, merged.TestDirectories)
		assert.Equal(t, []string{"alice@work.com"}, merged.IncludeUsers)
		assert.Equal(t, base.ProductionDirectories, merged.ProductionDirectories)
	})

	t.Run("Aliases overlay", func(t *testing.T) {
		merged := base.MergeWith(&AnalysisConfig{
			Aliases: map[string][]string{"alice@work.com": {"alice@home.com"}},
		})
		assert.Equal(t, []string{"alice@home.com"}, merged.Aliases["alice@work.com"])
	})
}

func TestLoadAnalysisConfig(t *testing.T) {
	t.Run("Valid file merges over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "codestats.yaml")
		content := `extensions:
  zig: Zig
test_directories:
  - qa
aliases:
  alice@work.com:
    - alice@home.com
exclude_users:
  - bot@ci.example.com
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadAnalysisConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "Zig", cfg.Extensions["zig"])
		assert.Equal(t, "Go", cfg.Extensions["go"])
		assert.Equal(t, []string{"qa"}, cfg.TestDirectories)
		assert.Equal(t, []string{"alice@home.com"}, cfg.Aliases["alice@work.com"])
		assert.Equal(t, []string{"bot@ci.example.com"}, cfg.ExcludeUsers)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadAnalysisConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("extensions: [not: a: map"), 0644))

		_, err := LoadAnalysisConfig(path)
		assert.Error(t, err)
	})
}
