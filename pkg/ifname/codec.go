// Package ifname implements the bidirectional long/short interface name
// mapping and alias-set generation described in spec.md §4.2. Every
// cross-source lookup in the normalizers (LAG membership, switchport
// enrichment) goes through the alias-expanded forms this package produces,
// since the same physical port is frequently named differently by
// different show commands on the same device.
package ifname

import (
	"regexp"
	"strings"

	"github.com/netfleet/netinv/pkg/model"
)

// prefixMapping associates a canonical long prefix with its short form and
// any additional vendor alternates. Order matters: longer/more specific
// prefixes must be checked before shorter ones that would otherwise
// shadow them (e.g. "TenGigabitEthernet" before "GigabitEthernet").
type prefixMapping struct {
	long      string
	short     string
	alternate []string
}

var prefixMappings = []prefixMapping{
	{long: "HundredGigabitEthernet", short: "Hu", alternate: []string{"HundredGigE"}},
	{long: "FortyGigabitEthernet", short: "Fo", alternate: []string{"FortyGigE"}},
	{long: "TwentyFiveGigE", short: "Twe", alternate: nil},
	{long: "TenGigabitEthernet", short: "Te", alternate: []string{"TenGigE"}},
	{long: "TFGigabitEthernet", short: "TF", alternate: nil}, // QTech 10G tag
	{long: "GigabitEthernet", short: "Gi", alternate: nil},
	{long: "FastEthernet", short: "Fa", alternate: nil},
	{long: "Ethernet", short: "Eth", alternate: nil},
	{long: "Port-channel", short: "Po", alternate: []string{"AggregatePort", "Ag"}},
	{long: "Vlan", short: "Vl", alternate: nil},
	{long: "Loopback", short: "Lo", alternate: nil},
	{long: "Management", short: "Mgmt", alternate: []string{"Ma"}},
	{long: "Tunnel", short: "Tu", alternate: nil},
	{long: "BDI", short: "BDI", alternate: nil},
}

// reNameSplit separates a leading alphabetic prefix from a trailing
// numeric/slash suffix, e.g. "GigabitEthernet0/1" -> ("GigabitEthernet",
// "0/1"). QTech names may carry an interior space ("TFGigabitEthernet
// 0/1"); that space is stripped before matching.
var reNameSplit = regexp.MustCompile(`^([A-Za-z\-]+)\s*([0-9][0-9/.:]*)$`)

// Canonicalize parses a raw interface name (in any vendor form) and
// returns its long canonical form, short form, and alias set (the long
// form, short form, any vendor alternates, and the raw input itself,
// deduplicated case-insensitively).
func Canonicalize(raw string) (long, short string, aliases []string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", nil
	}

	m := reNameSplit.FindStringSubmatch(raw)
	if m == nil {
		// Not a recognized "prefix+number" shape (e.g. "mgmt0" style or an
		// already-bare token); return as-is with no aliasing.
		return raw, raw, []string{raw}
	}
	prefix, suffix := m[1], m[2]

	mapping, ok := findMapping(prefix)
	if !ok {
		return raw, raw, []string{raw}
	}

	long = mapping.long + suffix
	short = mapping.short + suffix

	seen := map[string]struct{}{}
	add := func(s string) {
		if s == "" {
			return
		}
		if _, dup := seen[strings.ToLower(s)]; dup {
			return
		}
		seen[strings.ToLower(s)] = struct{}{}
		aliases = append(aliases, s)
	}
	add(long)
	add(short)
	for _, alt := range mapping.alternate {
		add(alt + suffix)
	}
	add(raw)

	return long, short, aliases
}

func findMapping(prefix string) (prefixMapping, bool) {
	p := strings.ToLower(prefix)
	for _, m := range prefixMappings {
		if strings.ToLower(m.long) == p || strings.ToLower(m.short) == p {
			return m, true
		}
		for _, alt := range m.alternate {
			if strings.ToLower(alt) == p {
				return m, true
			}
		}
	}
	return prefixMapping{}, false
}

// AliasSet returns the full set of names (long, short, vendor alternates)
// that could refer to the interface whose canonical long form is `long`.
// Re-derives from the long form so callers that only have a canonical
// record (not the original raw text) can still build a lookup key set.
func AliasSet(long string) []string {
	_, _, aliases := Canonicalize(long)
	return aliases
}

// ClassifyPortType applies the name-prefix fallback ladder step of
// spec.md §4.4's port_type priority list (used only when no port_type was
// already set upstream and no media/hardware-type hint is available).
func ClassifyPortType(canonicalName string) model.PortType {
	name := strings.ToLower(canonicalName)
	switch {
	case strings.HasPrefix(name, "port-channel"), strings.HasPrefix(name, "po"),
		strings.HasPrefix(name, "aggregateport"), strings.HasPrefix(name, "ag"):
		return model.PortTypeLAG
	case strings.HasPrefix(name, "vlan"), strings.HasPrefix(name, "vl"):
		return model.PortTypeVirtual
	case strings.HasPrefix(name, "loopback"), strings.HasPrefix(name, "lo"):
		return model.PortTypeLoopback
	case strings.HasPrefix(name, "tfgigabitethernet"), strings.HasPrefix(name, "tf"):
		return model.PortTypeSFPPlus
	case strings.HasPrefix(name, "management"), strings.HasPrefix(name, "mgmt"), strings.HasPrefix(name, "ma"):
		return model.PortTypeMgmt
	default:
		return model.PortTypeUnknown
	}
}

// MatchByAlias finds, among candidates, the interface whose alias set
// contains needle (case/space-insensitive), mirroring the LAG-membership
// and switchport-enrichment lookup spec.md §4.2/§4.4 require. Returns
// (-1, false) if no candidate matches.
//
// Case-insensitive prefix matching for "port-channel"/"po"/"aggregateport"/
// "ag" style LAG names is handled upstream by Canonicalize producing a
// matching alias; this function itself only does exact (post-normalize)
// alias comparison, satisfying spec.md §8's alias-lookup invariant: every
// alias of a canonical name resolves back to that interface.
func MatchByAlias(candidates []model.Interface, needle string) (int, bool) {
	for i, c := range candidates {
		if c.HasAlias(needle) {
			return i, true
		}
	}
	return -1, false
}
