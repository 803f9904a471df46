package main

import (
	"os"
	"path/filepath"
)

// historyFilePath resolves the append-only run-history log location,
// following the same XDG-then-home discovery order engconfig.Load uses
// for the engine config file, per spec.md §6 "Persisted state".
func historyFilePath() (string, error) {
	if env := os.Getenv("NETINV_HISTORY_FILE"); env != "" {
		return env, nil
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "netinv", "history.jsonl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "netinv", "history.jsonl"), nil
}
