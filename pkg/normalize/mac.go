package normalize

import (
	"strconv"
	"strings"

	"github.com/netfleet/netinv/pkg/ifname"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// canonicalizeMAC accepts any of the three common notations (Cisco dotted
// aabb.ccdd.eeff, colon aa:bb:cc:dd:ee:ff, dash aa-bb-cc-dd-ee-ff) and
// returns the canonical colon-separated uppercase IEEE form, or "" if raw
// doesn't look like a MAC at all. Idempotent and bijective within hex
// sextets (spec.md §8): re-canonicalizing an already-canonical address
// returns it unchanged, and distinct inputs that denote the same 48 bits
// always canonicalize to the same string.
func canonicalizeMAC(raw string) string {
	hex := extractHexDigits(raw)
	if len(hex) != 12 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strings.ToUpper(hex[i : i+2]))
	}
	return b.String()
}

func extractHexDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			b.WriteRune(r)
		case r == '.', r == ':', r == '-', r == ' ':
			continue
		default:
			return ""
		}
	}
	return b.String()
}

// MAC converts parsed "show mac address-table" rows into canonical
// MACEntry records for one device, deduplicating by (device, vlan, mac,
// interface) per spec.md §4.4. A row whose vlan field is missing, not a
// number, or outside [1, 4094] is dropped rather than emitted with a
// zero or out-of-range VLANID (spec.md §3/§8).
func MAC(rows []parse.Row, device string) []model.MACEntry {
	seen := map[string]struct{}{}
	out := make([]model.MACEntry, 0, len(rows))
	for _, row := range rows {
		mac := canonicalizeMAC(row.GetString("mac"))
		if mac == "" {
			continue
		}
		vlan, err := strconv.Atoi(row.GetString("vlan"))
		if err != nil || vlan < minVLAN || vlan > maxVLAN {
			continue
		}
		iface := row.GetString("interface")
		key := device + "|" + strconv.Itoa(vlan) + "|" + mac + "|" + iface
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		typ := model.MACDynamic
		switch strings.ToLower(row.GetString("type")) {
		case "static":
			typ = model.MACStatic
		case "sticky":
			typ = model.MACSticky
		}

		out = append(out, model.MACEntry{
			MAC:       mac,
			VLANID:    vlan,
			Interface: iface,
			Type:      typ,
			Device:    device,
		})
	}
	return out
}

// ExcludeTrunkPorts drops MAC entries learned on a trunk interface, per
// spec.md §8 scenario 2's "MAC intent with trunk filter". An interface
// counts as a trunk when its enriched switchport mode is tagged or
// tagged-all; an entry whose interface has no corresponding Interface
// record (no switchport data was collected for it) is kept, since the
// absence of data is not evidence of trunking.
func ExcludeTrunkPorts(entries []model.MACEntry, interfaces []model.Interface) []model.MACEntry {
	byDevice := make(map[string][]model.Interface, len(interfaces))
	for _, i := range interfaces {
		byDevice[i.Device] = append(byDevice[i.Device], i)
	}

	out := make([]model.MACEntry, 0, len(entries))
	for _, e := range entries {
		if idx, ok := ifname.MatchByAlias(byDevice[e.Device], e.Interface); ok {
			mode := byDevice[e.Device][idx].Mode
			if mode == model.ModeTagged || mode == model.ModeTaggedAll {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
