package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
browser:
  headless: true
  start_url: https://example.com
match:
  threshold: 45
  search_url: https://duckduckgo.com/?q=
sites:
  - keyword: standup notes
    url: https://wiki.example.com/standup
policy:
  denied_domains:
    - "*.internal.corp"
llm:
  model: local-8b
  base_url: http://localhost:8080/v1
  api_key_env: LOCAL_LLM_KEY
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "https://example.com", cfg.Browser.StartURL)
	assert.Equal(t, 45.0, cfg.Match.Threshold)
	assert.Equal(t, "https://duckduckgo.com/?q=", cfg.Match.SearchURL)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "standup notes", cfg.Sites[0].Keyword)
	assert.Equal(t, []string{"*.internal.corp"}, cfg.Policy.DeniedDomains)
	assert.Equal(t, "local-8b", cfg.LLM.Model)
	assert.Equal(t, "LOCAL_LLM_KEY", cfg.LLM.APIKeyEnv)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "browser:\n  headless: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, Default().Match, cfg.Match)
	assert.Equal(t, Default().LLM, cfg.LLM)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "browser: [not a mapping")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "threshold out of range", content: "match:\n  threshold: 250\n  search_url: https://g/?q="},
		{name: "site missing url", content: "sites:\n  - keyword: wiki\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
