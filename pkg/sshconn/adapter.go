package sshconn

import (
	"time"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/model"
)

// Adapter wraps a *ConnectionManager so it satisfies pkg/collector's
// SessionOpener interface (whose Open returns the narrower CommandRunner
// interface rather than the concrete *Session type ConnectionManager.Open
// itself returns).
type Adapter struct {
	*ConnectionManager
}

// Open dials and returns *Session as the collector.CommandRunner interface.
func (a Adapter) Open(device model.Device, creds model.Credentials, noPagerCmd string) (collector.CommandRunner, error) {
	return a.ConnectionManager.Open(device, creds, noPagerCmd)
}

// CommandDeadline returns the configured per-command timeout.
func (a Adapter) CommandDeadline() time.Duration {
	return a.ConnectionManager.CommandTimeout
}

var _ collector.SessionOpener = Adapter{}
