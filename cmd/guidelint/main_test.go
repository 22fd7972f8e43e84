package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/diagnostic"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules", "--format", "text")
	require.NoError(t, err)

	for _, id := range []string{"AV1000", "AV1135", "AV1502", "AV1535", "AV1536", "AV1547"} {
		assert.Contains(t, out, id)
	}
}

func TestCheckHistoryShow(t *testing.T) {
	dir := t.TempDir()
	src := "class ReadAndWrite { void M(int x) { switch (x) { case 1: { break; } } } }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.cs"), []byte(src), 0o644))
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "check", "--format", "json", "--db", db, dir)
	require.NoError(t, err)

	var diags []diagnostic.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &diags))
	require.Len(t, diags, 2)
	assert.Equal(t, "AV1000", diags[0].Rule)
	assert.Equal(t, "AV1536", diags[1].Rule)

	out, err = execute(t, "history", "--format", "text", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "#1 ")

	out, err = execute(t, "show", "--format", "json", "--db", db)
	require.NoError(t, err)
	var shown []diagnostic.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, diags, shown)

	_, err = execute(t, "show", "x", "--db", db)
	assert.Error(t, err)
}

func TestCheckCommand_ErrorSeverityFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.cs"), []byte("class SaveAndLoad { }\n"), 0o644))
	cfg := filepath.Join(dir, "guidelint.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("severities:\n  AV1000: error\n"), 0o644))

	out, err := execute(t, "check", "--config", cfg, "--format", "text", "--db", "", dir)
	assert.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, out, "error AV1000")
}
