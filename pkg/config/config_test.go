package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "TELEGRAM_BOT_TOKEN", "ALFRED_DB_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Alfred", cfg.App.Name)
	assert.Equal(t, "alfred.db", cfg.Store.Path)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
	assert.Equal(t, 1024, cfg.Generation.MaxTokens)

	name, p := cfg.GetDefaultProvider()
	assert.Equal(t, "googleai", name)
	assert.Equal(t, "gemini-1.5-flash", p.Model)

	_, ok := cfg.GetTelegramConfig()
	assert.False(t, ok)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
app:
  name: Jarvis
  chat_id: desk
providers:
  openai:
    api_key: sk-test
    model: gpt-4o-mini
    enabled: true
store:
  type: sqlite
  path: /tmp/todos.db
policy:
  deny_actions: [deleteTodoById]
  deny_patterns: ["(?i)secret"]
  max_cascade: 5
log:
  path: /tmp/alfred.jsonl
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Jarvis", cfg.App.Name)
	assert.Equal(t, "desk", cfg.App.ChatID)
	assert.Equal(t, "/tmp/todos.db", cfg.Store.Path)
	assert.Equal(t, []string{"deleteTodoById"}, cfg.Policy.DenyActions)
	assert.Equal(t, 5, cfg.Policy.MaxCascade)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Generation keeps its defaults when the file omits it.
	assert.Equal(t, 40, cfg.Generation.TopK)

	name, p := cfg.GetDefaultProvider()
	assert.Equal(t, "openai", name, "file providers replace the default provider")
	assert.Equal(t, "sk-test", p.APIKey)
	assert.Len(t, cfg.Providers, 1)
}

func TestLoadConfig_JSON(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.json", `{
		"gateways": {"telegram": {"token": "123:abc", "enabled": true}},
		"store": {"type": "sqlite", "path": "todos.db"}
	}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	tg, ok := cfg.GetTelegramConfig()
	require.True(t, ok)
	assert.Equal(t, "123:abc", tg.Token)
	assert.Equal(t, "todos.db", cfg.Store.Path)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("ALFRED_DB_PATH", "/var/lib/alfred.db")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	_, p := cfg.GetDefaultProvider()
	assert.Equal(t, "gem-key", p.APIKey)
	assert.Equal(t, "/var/lib/alfred.db", cfg.Store.Path)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"bad level":         "log:\n  path: x.log\n  level: loud\n",
		"bad store type":    "store:\n  type: postgres\n  path: x\n",
		"bad deny action":   "policy:\n  deny_actions: [dropTable]\n",
		"enabled no model":  "providers:\n  openai:\n    enabled: true\n",
		"telegram no token": "gateways:\n  telegram:\n    enabled: true\n",
		"temperature range": "generation:\n  temperature: 3\n",
		"negative cascade":  "policy:\n  max_cascade: -1\n",
		"malformed yaml":    "app: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "config.yaml", content))
			assert.Error(t, err)
		})
	}
}
