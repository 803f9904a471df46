// Package collector implements CollectorEngine, spec.md §4.6's per-intent
// fan-out: a bounded worker pool opens one SSH session per device, runs the
// primary command, parses it into Rows, then layers on secondary
// enrichment (lag/switchport/media_type), each triple-guarded so that a
// failure in enrichment never fails the primary record. Normalization
// into canonical pkg/model records is the caller's job (pkg/normalize),
// keeping this package ignorant of any one intent's output shape.
//
// The job/outs channel shape is carried over directly from the teacher's
// net_collect.go CollectLLDPForHosts, generalized from "LLDP only" to every
// intent and from exec.CommandContext+OpenSSH to pkg/sshconn sessions.
package collector

import (
	"sync"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/netfleet/netinv/pkg/platform"
)

// CommandRunner is the subset of *sshconn.Session the collector needs;
// expressed as an interface here so tests can fake a device session
// without dialing real SSH.
type CommandRunner interface {
	Run(command string, deadline time.Duration) (string, error)
	Close() error
}

// SessionOpener is the subset of *sshconn.ConnectionManager the collector
// needs. Production code wires this to sshconn.Adapter wrapping a real
// ConnectionManager; tests wire a fake.
type SessionOpener interface {
	Open(device model.Device, creds model.Credentials, noPagerCmd string) (CommandRunner, error)
	CommandDeadline() time.Duration
}

// DeviceResult is one device's outcome for one CollectorEngine.Run call:
// its parsed primary rows (pre-normalization — callers apply pkg/normalize
// themselves), secondary rows keyed by intent (callers apply the matching
// Enrich* function), and any error that made the device a total failure.
type DeviceResult struct {
	Device model.Device

	// RawOutput is the primary command's unparsed response, kept
	// alongside PrimaryRows for intents with no structured template —
	// "backup" wants the raw `show running-config` text, not rows.
	RawOutput     string
	PrimaryRows   []parse.Row
	SecondaryRows map[platform.Intent][]parse.Row
	Err           error
}

// SecondaryConfig controls which secondary intents are attempted and
// whether to keep collecting if they error — per spec.md §4.6, enrichment
// failures are always swallowed (logged, not propagated); this flag exists
// only to let a caller skip the attempt entirely.
type SecondaryConfig struct {
	Enabled map[platform.Intent]bool
}

// enabled reports whether the given secondary intent should be attempted.
func (c SecondaryConfig) enabled(intent platform.Intent) bool {
	if c.Enabled == nil {
		return false
	}
	return c.Enabled[intent]
}

// secondaryIntentOrder is the fixed set of enrichment intents CollectorEngine
// may attempt alongside any primary intent, per spec.md §4.6's "for each
// secondary_intent in {lag, switchport, media_type}".
var secondaryIntentOrder = []platform.Intent{
	platform.IntentLAG,
	platform.IntentSwitchport,
	platform.IntentMediaType,
}

// Engine fans out SSH collection across devices with a bounded worker
// pool, per spec.md §5's concurrency model.
type Engine struct {
	Registry *platform.Registry
	Conn     SessionOpener
	Parser   *parse.TemplateParser

	// WorkerPoolSize bounds concurrent in-flight device sessions; <=0
	// defaults to 10 per spec.md §4.9.
	WorkerPoolSize int

	// OnWarning receives enrichment failures that were swallowed, for
	// structured logging by the caller; may be nil.
	OnWarning func(device model.Device, intent platform.Intent, err error)
}

// Run collects primary intent across every device, with secondary
// enrichment rows collected alongside when sc permits, per device in
// parallel up to e.WorkerPoolSize. Order of returned results is not
// guaranteed to match input order (spec.md §5).
func (e *Engine) Run(devices []model.Device, creds model.Credentials, primary platform.Intent, sc SecondaryConfig) []DeviceResult {
	if len(devices) == 0 {
		return nil
	}
	poolSize := e.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	if poolSize > len(devices) {
		poolSize = len(devices)
	}

	jobs := make(chan model.Device)
	outs := make(chan DeviceResult)

	var wg sync.WaitGroup
	wg.Add(poolSize)
	for i := 0; i < poolSize; i++ {
		go func() {
			defer wg.Done()
			for d := range jobs {
				outs <- e.collectOneDevice(d, creds, primary, sc)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, d := range devices {
			jobs <- d
		}
	}()

	go func() {
		wg.Wait()
		close(outs)
	}()

	var results []DeviceResult
	for r := range outs {
		results = append(results, r)
	}
	return results
}

func (e *Engine) collectOneDevice(device model.Device, creds model.Credentials, primary platform.Intent, sc SecondaryConfig) DeviceResult {
	entry, err := e.Registry.Resolve(device.Platform)
	if err != nil {
		return DeviceResult{Device: device, Err: err}
	}

	primaryCmd, ok := entry.Commands[primary]
	if !ok {
		return DeviceResult{Device: device, Err: model.ErrUnknownPlatform}
	}

	sess, err := e.Conn.Open(device, creds, entry.NoPagerCommand)
	if err != nil {
		return DeviceResult{Device: device, Err: err}
	}
	defer sess.Close()

	raw, err := sess.Run(primaryCmd, e.Conn.CommandDeadline())
	if err != nil {
		return DeviceResult{Device: device, Err: err}
	}
	rows, err := e.Parser.Parse(raw, device.Platform, primaryCmd)
	if err != nil {
		return DeviceResult{Device: device, RawOutput: raw, Err: err}
	}

	result := DeviceResult{Device: device, RawOutput: raw, PrimaryRows: rows, SecondaryRows: map[platform.Intent][]parse.Row{}}

	// Secondary enrichment — triple-guarded per spec.md §4.6: (a) the
	// intent-level flag is enabled, (b) a command is defined for this
	// platform, (c) any failure here is swallowed as a warning and never
	// fails the primary collection.
	for _, intent := range secondaryIntentOrder {
		if !sc.enabled(intent) {
			continue
		}
		cmd, ok := entry.Commands[intent]
		if !ok {
			continue
		}
		secRaw, err := sess.Run(cmd, e.Conn.CommandDeadline())
		if err != nil {
			e.warn(device, intent, err)
			continue
		}
		secRows, err := e.Parser.Parse(secRaw, device.Platform, cmd)
		if err != nil {
			e.warn(device, intent, err)
			continue
		}
		result.SecondaryRows[intent] = secRows
	}

	return result
}

func (e *Engine) warn(device model.Device, intent platform.Intent, err error) {
	if e.OnWarning != nil {
		e.OnWarning(device, intent, err)
	}
}
