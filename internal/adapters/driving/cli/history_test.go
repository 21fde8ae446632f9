package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No searches yet.")
}

func TestHistory_ListsRecent(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, active.history.Record(t.Context(), "budget", 2))
	require.NoError(t, active.history.Record(t.Context(), "invoices", 7))

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "budget")
	assert.Contains(t, out, "invoices")
	assert.Contains(t, out, "7 results")
	assert.Contains(t, out, "now")
}

func TestHistory_Limit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, active.history.Record(t.Context(), "budget", 2))
	require.NoError(t, active.history.Record(t.Context(), "invoices", 7))

	out, err := execute(t, "history", "-n", "1")

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "results"))
}

func TestHistoryClear(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, active.history.Record(t.Context(), "budget", 2))

	out, err := execute(t, "history", "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
	entries, err := active.history.Recent(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
