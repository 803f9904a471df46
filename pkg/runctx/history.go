package runctx

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/netfleet/netinv/pkg/model"
)

// HistoryStore is an append-only JSON-lines log of run history, capped to
// the N most recent entries, per spec.md §6 "Persisted state". Modeled
// on the teacher corpus's audit.FileLogger (JSON-lines file, mutex-guarded
// writes, best-effort skip of malformed lines on read) generalized from
// per-command audit events to per-run summaries.
type HistoryStore struct {
	path     string
	maxKeep  int
	mu       sync.Mutex
}

// NewHistoryStore returns a store for the JSON-lines history file at path,
// creating its directory if needed (the file itself is created on the
// first Append), retaining at most maxKeep entries. maxKeep <= 0 means
// unbounded.
func NewHistoryStore(path string, maxKeep int) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &HistoryStore{path: path, maxKeep: maxKeep}, nil
}

// Append writes entry to the history file, then trims to the maxKeep most
// recent entries if the store has a bound.
func (s *HistoryStore) Append(entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAllLocked()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if s.maxKeep > 0 && len(entries) > s.maxKeep {
		entries = entries[len(entries)-s.maxKeep:]
	}
	return s.rewriteLocked(entries)
}

// All returns every entry currently retained, oldest first.
func (s *HistoryStore) All() ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAllLocked()
}

func (s *HistoryStore) readAllLocked() ([]model.HistoryEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []model.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		var e model.HistoryEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

func (s *HistoryStore) rewriteLocked(entries []model.HistoryEntry) error {
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history tmp file: %w", err)
	}
	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			f.Close()
			return fmt.Errorf("writing history entry: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// NewHistoryEntry builds a HistoryEntry from a completed RunContext and
// its final summary.
func NewHistoryEntry(r *RunContext, endTime time.Time, summary model.RunSummary) model.HistoryEntry {
	return model.HistoryEntry{
		RunID:     r.RunID,
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   endTime.Format(time.RFC3339),
		DryRun:    r.DryRun,
		Summary:   summary,
	}
}
