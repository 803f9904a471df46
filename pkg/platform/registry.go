// Package platform implements the table-driven platform tag → SSH driver /
// template family / command mapping described in spec.md §4.1. It is pure,
// immutable configuration constructed once at startup and shared
// read-only across workers (spec.md §5).
package platform

import (
	"fmt"
	"strings"

	"github.com/netfleet/netinv/pkg/model"
)

// SSHDriverID is the closed set of SSH driver flavors a platform can map
// to. wlc-like is reserved for future wireless-controller support and is
// currently unused by any registered platform (spec.md §9 Open Questions).
type SSHDriverID string

const (
	DriverIOSLike   SSHDriverID = "ios-like"
	DriverNXOSLike  SSHDriverID = "nxos-like"
	DriverEOSLike   SSHDriverID = "eos-like"
	DriverJunosLike SSHDriverID = "junos-like"
	DriverWLCLike   SSHDriverID = "wlc-like"
)

// Intent names a collection task. Primary intents each map to exactly one
// command per platform (enforced for "devices" by Validate); secondary
// intents are optional enrichment and a missing mapping is not an error.
type Intent string

const (
	IntentDevices    Intent = "devices"
	IntentMAC        Intent = "mac"
	IntentLLDP       Intent = "lldp"
	IntentInterfaces Intent = "interfaces"
	IntentInventory  Intent = "inventory"
	IntentBackup     Intent = "backup"

	IntentLAG         Intent = "lag"
	IntentSwitchport  Intent = "switchport"
	IntentMediaType   Intent = "media_type"
	IntentTransceiver Intent = "transceiver"
)

var secondaryIntents = map[Intent]struct{}{
	IntentLAG:         {},
	IntentSwitchport:  {},
	IntentMediaType:   {},
	IntentTransceiver: {},
}

// IsSecondary reports whether intent is a secondary (enrichment) intent.
func IsSecondary(intent Intent) bool {
	_, ok := secondaryIntents[intent]
	return ok
}

// PlatformEntry is one row of the registry: ssh driver, preferred template
// family, commands by intent, vendor tag.
type PlatformEntry struct {
	SSHDriver      SSHDriverID
	TemplateFamily string
	Commands       map[Intent]string
	VendorTag      string

	// NoPagerCommand, issued once at session open to disable CLI paging
	// (spec.md §4.5's "pin paging off" is part of ConnectionManager.Open).
	NoPagerCommand string
}

// Registry is an immutable, read-only-after-construction platform table.
type Registry struct {
	entries map[string]PlatformEntry
}

// New builds the default registry covering Cisco IOS/IOS-XE/NX-OS/IOS-XR,
// Arista EOS, Juniper, and QTech, per spec.md §1's named fleet.
func New() *Registry {
	r := &Registry{entries: map[string]PlatformEntry{
		"cisco_ios": {
			SSHDriver:      DriverIOSLike,
			TemplateFamily: "cisco_ios",
			VendorTag:      "cisco",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show etherchannel summary",
				IntentSwitchport: "show interfaces switchport",
			},
		},
		"cisco_iosxe": {
			SSHDriver:      DriverIOSLike,
			TemplateFamily: "cisco_ios",
			VendorTag:      "cisco",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show etherchannel summary",
				IntentSwitchport: "show interfaces switchport",
			},
		},
		"cisco_iosxr": {
			SSHDriver:      DriverIOSLike,
			TemplateFamily: "cisco_iosxr",
			VendorTag:      "cisco",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac-address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show bundle",
			},
		},
		"cisco_nxos": {
			SSHDriver:      DriverNXOSLike,
			TemplateFamily: "cisco_nxos",
			VendorTag:      "cisco",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interface",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show port-channel summary",
				IntentSwitchport: "show interface switchport",
			},
		},
		"arista_eos": {
			SSHDriver:      DriverEOSLike,
			TemplateFamily: "arista_eos",
			VendorTag:      "arista",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show port-channel summary",
				IntentSwitchport: "show interfaces switchport",
			},
		},
		"juniper_junos": {
			SSHDriver:      DriverJunosLike,
			TemplateFamily: "juniper_junos",
			VendorTag:      "juniper",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show ethernet-switching table",
				IntentLLDP:       "show lldp neighbors",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show chassis hardware",
				IntentBackup:     "show configuration",
				IntentLAG:        "show lacp interfaces",
			},
		},
		"qtech": {
			SSHDriver:      DriverIOSLike,
			TemplateFamily: "qtech",
			VendorTag:      "qtech",
			NoPagerCommand: "terminal length 0",
			Commands: map[Intent]string{
				IntentDevices:    "show version",
				IntentMAC:        "show mac-address-table",
				IntentLLDP:       "show lldp neighbors detail",
				IntentInterfaces: "show interfaces",
				IntentInventory:  "show inventory",
				IntentBackup:     "show running-config",
				IntentLAG:        "show lacp summary",
				IntentSwitchport: "show interfaces status",
			},
		},
	}}
	return r
}

// Resolve looks up a PlatformEntry by platform tag.
func (r *Registry) Resolve(platformTag string) (PlatformEntry, error) {
	e, ok := r.entries[strings.ToLower(strings.TrimSpace(platformTag))]
	if !ok {
		return PlatformEntry{}, fmt.Errorf("%w: %q", model.ErrUnknownPlatform, platformTag)
	}
	return e, nil
}

// CommandFor returns the command string for (platformTag, intent) and
// whether it was found. A missing secondary-intent command is not an
// error; callers must check `found` rather than relying on a zero value.
func (r *Registry) CommandFor(platformTag string, intent Intent) (cmd string, found bool) {
	e, err := r.Resolve(platformTag)
	if err != nil {
		return "", false
	}
	cmd, found = e.Commands[intent]
	return cmd, found
}

// TemplateKey returns the (platformTag, lowercased command) pair used by
// pkg/parse.TemplateParser to look up a custom template override.
func TemplateKey(platformTag, cmd string) (string, string) {
	return strings.ToLower(strings.TrimSpace(platformTag)), strings.ToLower(strings.TrimSpace(cmd))
}

// TemplateFamily returns the shared-template family key for a platform tag.
func (r *Registry) TemplateFamily(platformTag string) (string, error) {
	e, err := r.Resolve(platformTag)
	if err != nil {
		return "", err
	}
	return e.TemplateFamily, nil
}

// Validate enforces the registry-wide invariant: every entry has at least a
// `devices` command (spec.md §4.1).
func (r *Registry) Validate() error {
	for tag, e := range r.entries {
		if _, ok := e.Commands[IntentDevices]; !ok {
			return fmt.Errorf("platform %q: missing required %q command", tag, IntentDevices)
		}
	}
	return nil
}

// Tags returns every registered platform tag, sorted is not guaranteed;
// callers needing determinism should sort the result.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.entries))
	for t := range r.entries {
		out = append(out, t)
	}
	return out
}
