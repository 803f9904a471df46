package runctx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsUniqueRunIDs(t *testing.T) {
	a := New(false, nil)
	b := New(false, nil)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestAddCountersAccumulatesAcrossCalls(t *testing.T) {
	rc := New(false, nil)
	rc.AddCounters("device", model.EntityCounters{Created: 2})
	rc.AddCounters("device", model.EntityCounters{Created: 1, Updated: 1})

	s := rc.Summary()
	assert.Equal(t, 3, s.Counters["device"].Created)
	assert.Equal(t, 1, s.Counters["device"].Updated)
}

func TestAddCountersIsConcurrencySafe(t *testing.T) {
	rc := New(false, nil)
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		go func() {
			rc.AddCounters("interface", model.EntityCounters{Created: 1})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}
	assert.Equal(t, 50, rc.Summary().Counters["interface"].Created)
}

func TestRecordDeviceAppearsInSummary(t *testing.T) {
	rc := New(true, nil)
	rc.RecordDevice(model.DeviceOutcome{Device: "sw1", Intents: map[string]model.IntentOutcome{"devices": model.OutcomeSucceeded}})

	s := rc.Summary()
	require.Len(t, s.Devices, 1)
	assert.Equal(t, "sw1", s.Devices[0].Device)
	assert.True(t, s.DryRun)
}

func TestHistoryStoreAppendAndCap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")
	store, err := NewHistoryStore(path, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rc := New(false, nil)
		entry := NewHistoryEntry(rc, time.Now(), model.RunSummary{RunID: rc.RunID})
		require.NoError(t, store.Append(entry))
	}

	entries, err := store.All()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryStoreAllOnMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "history.jsonl")
	store, err := NewHistoryStore(path, 0)
	require.NoError(t, err)

	entries, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
