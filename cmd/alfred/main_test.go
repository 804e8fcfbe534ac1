package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rahul/alfred/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "alfred.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "store:\n  type: sqlite\n  path: " + dbPath + "\nlog:\n  path: " + filepath.Join(dir, "alfred.jsonl") + "\n  level: info\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	s, err := store.Open(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(context.Background(), "console", "human", "add buy milk"))
	require.NoError(t, s.AddMessage(context.Background(), "console", "ai", `Added new todo: "buy milk"`))
	require.NoError(t, s.AddMessage(context.Background(), "42", "human", "list"))
	require.NoError(t, s.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"history", "--config", cfgPath, "--limit", "5"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "human add buy milk")
	assert.Contains(t, out.String(), `ai    Added new todo: "buy milk"`)
	assert.NotContains(t, out.String(), "list")
}
