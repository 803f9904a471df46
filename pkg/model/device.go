// Package model defines the canonical, vendor-neutral data types shared by
// every stage of the pipeline: collection, parsing, normalization, diffing,
// and reconciliation. Types here never carry vendor-specific shape; that is
// the whole point of the normalizer boundary (see pkg/normalize).
package model

import "fmt"

// Device is the identity and transport parameters for one piece of network
// gear supplied by the caller. It is immutable within a run.
type Device struct {
	// Host is an IPv4/IPv6 literal or a resolvable hostname. Required.
	Host string

	// Platform is the short platform tag (e.g. "cisco_ios", "qtech") used to
	// resolve a PlatformEntry. Authoritative for every code path; DeviceType
	// is a hint only (see DESIGN.md Open Questions).
	Platform string

	// DeviceType is an optional model hint passed through to NetBox; never
	// branched on by the core.
	DeviceType string

	Site string
	Role string

	// Name is an optional friendly name; when empty the collected hostname
	// (from the `devices` intent) is used as the natural key.
	Name string

	Enabled bool
}

// Validate checks the invariants spec.md §3 requires of a Device record
// before it is handed to the collector. Platform-registry membership is
// checked by the caller (pkg/platform), since Device itself has no registry
// reference.
func (d Device) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("device: host is required")
	}
	if d.Platform == "" {
		return fmt.Errorf("device %s: platform is required", d.Host)
	}
	return nil
}

// Key returns the natural key used to correlate a Device across collection,
// diffing, and reconciliation: its friendly Name if set, else its Host.
func (d Device) Key() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Host
}

// Credentials bind a username/password (and optional enable secret) to a
// device set. Passed by value; the core never persists or logs these
// fields, per spec.md §6.
type Credentials struct {
	Username string
	Password string

	// Enable is an optional secret for entering privileged/enable mode on
	// platforms that require it (e.g. Cisco IOS).
	Enable string
}

// String deliberately never reveals secret material, so that an accidental
// %v/%s in a log statement cannot leak credentials.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username:%q}", c.Username)
}
