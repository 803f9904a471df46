// Package runctx implements RunContext: the per-invocation identity, mutable
// counters, and structured log sink threaded through collection and
// reconciliation, per spec.md §3/§6. Counter accumulation goes through a
// mutex-guarded accumulator (spec.md §5 grounding note) rather than
// naked shared state.
package runctx

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/sirupsen/logrus"
)

// RunContext identifies one collection/reconciliation run and aggregates
// its counters and log output.
type RunContext struct {
	RunID     string
	DryRun    bool
	StartTime time.Time

	Log *logrus.Entry

	mu       sync.Mutex
	counters map[string]model.EntityCounters
	devices  []model.DeviceOutcome
}

// New creates a RunContext with a fresh run id and a logrus entry tagged
// with it, so every log line for this run can be correlated without
// threading the id through every call site by hand.
func New(dryRun bool, logger *logrus.Logger) *RunContext {
	if logger == nil {
		logger = logrus.New()
	}
	id := newRunID()
	return &RunContext{
		RunID:     id,
		DryRun:    dryRun,
		StartTime: time.Now(),
		Log:       logger.WithField("run_id", id),
		counters:  make(map[string]model.EntityCounters),
	}
}

func newRunID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "run-" + time.Now().Format("20060102-150405")
	}
	return "run-" + hex.EncodeToString(b[:])
}

// AddCounters merges delta into the running totals for entityKind
// ("device", "interface", "ip", "vlan", "cable", "inventory"). Safe for
// concurrent use by multiple reconciliation phases or worker goroutines.
func (r *RunContext) AddCounters(entityKind string, delta model.EntityCounters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.counters[entityKind]
	cur.Created += delta.Created
	cur.Updated += delta.Updated
	cur.Deleted += delta.Deleted
	cur.Skipped += delta.Skipped
	cur.Failed += delta.Failed
	r.counters[entityKind] = cur
}

// RecordDevice appends one device's outcome to the run, for inclusion in
// the eventual RunSummary.
func (r *RunContext) RecordDevice(outcome model.DeviceOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = append(r.devices, outcome)
}

// Summary assembles the structured RunSummary spec.md §7 requires,
// snapshotting the counters and device outcomes accumulated so far.
func (r *RunContext) Summary() model.RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	counters := make(map[string]model.EntityCounters, len(r.counters))
	for k, v := range r.counters {
		counters[k] = v
	}
	devices := make([]model.DeviceOutcome, len(r.devices))
	copy(devices, r.devices)
	return model.RunSummary{
		RunID:    r.RunID,
		DryRun:   r.DryRun,
		Devices:  devices,
		Counters: counters,
	}
}
