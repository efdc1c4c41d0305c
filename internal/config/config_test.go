package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/mauvaise-langue/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefault(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	assert.Equal(t, "https://fr.wiktionary.org", cfg.BaseURL())
	assert.Equal(t, "/wiki/Cat%C3%A9gorie:Insultes_en_fran%C3%A7ais", cfg.CategoryPath())
	assert.Equal(t, "Catégorie:Insultes en français", cfg.CategoryTitle())
	assert.Equal(t, "mw-pages", cfg.ContainerID())
	assert.Equal(t, "page suivante", cfg.NextPageText())
	assert.Equal(t, "/wiki/", cfg.WikiPathPrefix())
	assert.Equal(t, "insultes_cache.json", cfg.CacheFile())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 1, cfg.MaxAttempt())
	assert.Equal(t, config.FormatText, cfg.DefinitionFormat())
	assert.Contains(t, cfg.UserAgent(), "mauvaise-langue/")
	assert.NotZero(t, cfg.RandomSeed())
	assert.Equal(t, 2.0, cfg.BackoffMultiplier())
}

func TestBuilder_Overrides(t *testing.T) {
	cfg, err := config.WithDefault().
		WithBaseURL("http://127.0.0.1:8080/").
		WithCacheFile("/tmp/cache.json").
		WithTimeout(2 * time.Second).
		WithUserAgent("test-agent").
		WithMaxAttempt(3).
		WithJitter(0).
		WithRandomSeed(42).
		WithBackoffInitialDuration(time.Millisecond).
		WithBackoffMultiplier(3).
		WithBackoffMaxDuration(time.Second).
		WithDefinitionFormat(config.FormatMarkdown).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL(), "trailing slash is trimmed")
	assert.Equal(t, "/tmp/cache.json", cfg.CacheFile())
	assert.Equal(t, 2*time.Second, cfg.Timeout())
	assert.Equal(t, "test-agent", cfg.UserAgent())
	assert.Equal(t, 3, cfg.MaxAttempt())
	assert.Equal(t, time.Duration(0), cfg.Jitter())
	assert.Equal(t, int64(42), cfg.RandomSeed())
	assert.Equal(t, time.Millisecond, cfg.BackoffInitialDuration())
	assert.Equal(t, 3.0, cfg.BackoffMultiplier())
	assert.Equal(t, time.Second, cfg.BackoffMaxDuration())
	assert.Equal(t, config.FormatMarkdown, cfg.DefinitionFormat())
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		build func() (config.Config, error)
	}{
		{
			name:  "relative base url",
			build: config.WithDefault().WithBaseURL("fr.wiktionary.org").Build,
		},
		{
			name:  "empty cache file",
			build: config.WithDefault().WithCacheFile("").Build,
		},
		{
			name:  "zero timeout",
			build: config.WithDefault().WithTimeout(0).Build,
		},
		{
			name:  "zero attempts",
			build: config.WithDefault().WithMaxAttempt(0).Build,
		},
		{
			name:  "unknown definition format",
			build: config.WithDefault().WithDefinitionFormat("html").Build,
		},
		{
			name:  "empty category path",
			build: config.WithDefault().WithCategoryPath("").Build,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestWithConfigFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"baseUrl": "http://localhost:9999",
		"cacheFile": "cache/insultes.json",
		"timeout": 3000000000,
		"maxAttempt": 2,
		"definitionFormat": "markdown"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.WithConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL())
	assert.Equal(t, "cache/insultes.json", cfg.CacheFile())
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.MaxAttempt())
	assert.Equal(t, config.FormatMarkdown, cfg.DefinitionFormat())
	// untouched keys keep defaults
	assert.Equal(t, config.DefaultCategoryPath, cfg.CategoryPath())
	assert.Equal(t, config.DefaultNextPageText, cfg.NextPageText())
}

func TestWithConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "baseUrl: http://localhost:9999/\n" +
		"timeout: 4s\n" +
		"categoryTitle: \"Catégorie:Insultes en français\"\n" +
		"userAgent: yaml-agent\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.WithConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL())
	assert.Equal(t, 4*time.Second, cfg.Timeout())
	assert.Equal(t, "yaml-agent", cfg.UserAgent())
	assert.Equal(t, config.DefaultCacheFile, cfg.CacheFile())
}

func TestWithConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := config.WithConfigFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, config.ErrFileDoesNotExist), "got %v", err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0644))
	_, err = config.WithConfigFile(broken)
	assert.True(t, errors.Is(err, config.ErrConfigParsingFail), "got %v", err)

	invalid := filepath.Join(dir, "invalid.yml")
	require.NoError(t, os.WriteFile(invalid, []byte("maxAttempt: -1\n"), 0644))
	_, err = config.WithConfigFile(invalid)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, found := config.FindConfigFile(dir)
	assert.False(t, found)

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0644))
	got, found := config.FindConfigFile(dir)
	require.True(t, found)
	assert.Equal(t, jsonPath, got)

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("{}"), 0644))
	got, found = config.FindConfigFile(dir)
	require.True(t, found)
	assert.Equal(t, yamlPath, got, "yaml takes precedence over json")
}

func TestXDGConfigDir(t *testing.T) {
	assert.Equal(t, config.AppName, filepath.Base(config.XDGConfigDir()))
}

func TestConfig_Builder_CopiesBeforeOverride(t *testing.T) {
	base, err := config.WithDefault().WithCacheFile("base.json").WithTimeout(4 * time.Second).Build()
	require.NoError(t, err)

	derived, err := base.Builder().WithCacheFile("derived.json").Build()
	require.NoError(t, err)

	assert.Equal(t, "derived.json", derived.CacheFile())
	assert.Equal(t, 4*time.Second, derived.Timeout())
	assert.Equal(t, base.RandomSeed(), derived.RandomSeed())
	assert.Equal(t, "base.json", base.CacheFile())
}
