package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wodforge/internal/llm"
)

func TestLedger_RecordsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.db")
	led, err := Open(path)
	require.NoError(t, err)
	defer led.Close()

	var obs llm.Observer = led
	obs.OnCallComplete(llm.CallEvent{
		Task: llm.TaskIntent, Provider: llm.ProviderOllama, Model: "llama3.2",
		LatencyMs: 42, Success: true,
	})
	obs.OnCallComplete(llm.CallEvent{
		Task: llm.TaskAnnotate, Provider: llm.ProviderOllama, Model: "llama3.2",
		LatencyMs: 7, Success: false, ErrorCode: "TIMEOUT",
	})

	entries, err := led.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// most recent first
	assert.Equal(t, "annotate", entries[0].Task)
	assert.Equal(t, "err:TIMEOUT", entries[0].Status)
	assert.Equal(t, "ok", entries[1].Status)
	assert.Equal(t, int64(42), entries[1].LatencyMs)
	assert.Equal(t, "ollama", entries[0].Provider)
	assert.NotEmpty(t, entries[0].CallID)
	assert.NotEqual(t, entries[0].CallID, entries[1].CallID)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestLedger_RecentHonorsLimit(t *testing.T) {
	led, err := Open(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	defer led.Close()

	for i := 0; i < 5; i++ {
		led.OnCallComplete(llm.CallEvent{
			Task: llm.TaskOptimize, Provider: llm.ProviderOpenAI, Model: "gpt-4o-mini",
			LatencyMs: int64(i), Success: true,
		})
	}

	entries, err := led.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, int64(4), entries[0].LatencyMs)
}

func TestLedger_RecentDefaultLimit(t *testing.T) {
	led, err := Open(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	defer led.Close()

	led.OnCallComplete(llm.CallEvent{Task: llm.TaskIntent, Provider: llm.ProviderOllama, Model: "m", Success: true})

	entries, err := led.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLedger_RowsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.db")

	led, err := Open(path)
	require.NoError(t, err)
	led.OnCallComplete(llm.CallEvent{Task: llm.TaskArchitect, Provider: llm.ProviderOllama, Model: "m", Success: true})
	require.NoError(t, led.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "architect", entries[0].Task)
}

func TestLedger_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "calls.db")

	led, err := Open(path)
	require.NoError(t, err)
	defer led.Close()

	entries, err := led.Recent(1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
