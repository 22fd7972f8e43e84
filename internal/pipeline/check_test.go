package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/config"
	"guidelint/internal/diagnostic"
	"guidelint/internal/logging"
	"guidelint/internal/storage"
)

const orders = `
class OrderAndInvoice
{
    void Ship(int count)
    {
        switch (count)
        {
            case 0: { return; }
        }
    }
}
`

const generated = `// <auto-generated />
class ProxyAndStub { }
`

func project(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Orders.cs"), []byte(orders), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Proxy.cs"), []byte(generated), 0o644))

	return root
}

func ruleIDs(diags []diagnostic.Diagnostic) []string {
	ids := make([]string, 0, len(diags))
	for _, d := range diags {
		ids = append(ids, d.Rule)
	}

	return ids
}

func TestCheck_Run(t *testing.T) {
	root := project(t)

	check := NewCheck(config.Default(), logging.Discard())
	result, err := check.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files)
	assert.Equal(t, []string{"AV1000", "AV1536"}, ruleIDs(result.Diagnostics))
	assert.Zero(t, result.RunID)
}

func TestCheck_Config(t *testing.T) {
	root := project(t)

	cfg := config.Default()
	cfg.Disabled = []string{"AV1536"}
	cfg.Severities["AV1000"] = "error"
	cfg.IncludeGenerated = true
	cfg.Workers = 1

	result, err := NewCheck(cfg, logging.Discard()).Run(context.Background(), root)
	require.NoError(t, err)

	require.Equal(t, []string{"AV1000", "AV1000"}, ruleIDs(result.Diagnostics))
	for _, d := range result.Diagnostics {
		assert.Equal(t, diagnostic.SevError, d.Severity)
	}

	cfg.Severities["AV1000"] = "fatal"
	_, err = NewCheck(cfg, logging.Discard()).Run(context.Background(), root)
	assert.Error(t, err)
}

func TestCheck_SavesRun(t *testing.T) {
	root := project(t)

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	check := NewCheck(config.Default(), logging.Discard())
	check.Store = store

	ctx := context.Background()
	result, err := check.Run(ctx, root)
	require.NoError(t, err)
	require.Positive(t, result.RunID)

	run, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, []string{root}, run.Roots)
	assert.Equal(t, 2, run.Files)

	saved, err := store.Diagnostics(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Diagnostics, saved)
}

func TestCheck_MissingRoot(t *testing.T) {
	_, err := NewCheck(config.Default(), logging.Discard()).Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
