package normalize

import (
	"strings"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// switchportResult is the normalized shape every dialect branch below
// produces, consumed by enrich_with_switchport.
type switchportResult struct {
	Name          string
	Mode          model.SwitchportMode
	UntaggedVLAN  *int
	TaggedVLANIDs map[int]struct{}
}

// normalizeSwitchport dispatches on the row's "dialect" field, set at
// parse time by the family-specific switchport template
// (ios_like/nxos_like/qtech_like — see pkg/parse). Tagging the dialect at
// parse time, rather than inferring it here from field presence, is the
// redesign spec.md §9 calls for: the historic bug this replaces detected
// dialect by checking for a "switchport" boolean field first, which also
// matches NX-OS's "Switchport: Enabled" line and silently misclassified
// NX-OS trunks as QTech rows. Requiring an explicit, already-known dialect
// tag removes the ambiguity rather than reordering the guesswork.
func normalizeSwitchport(row parse.Row) (switchportResult, bool) {
	switch row.GetString("dialect") {
	case "nxos_like":
		return normalizeSwitchportNXOS(row), true
	case "qtech_like":
		return normalizeSwitchportQTech(row), true
	case "ios_like":
		return normalizeSwitchportIOS(row), true
	default:
		return switchportResult{}, false
	}
}

func normalizeSwitchportIOS(row parse.Row) switchportResult {
	res := switchportResult{Name: row.GetString("name"), TaggedVLANIDs: map[int]struct{}{}}
	mode := strings.ToLower(row.GetString("admin_mode"))
	switch {
	case strings.Contains(mode, "access"):
		res.Mode = model.ModeAccess
		if v := row.GetString("access_vlan"); v != "" {
			if id, ok := parseSingleVLAN(v); ok {
				res.UntaggedVLAN = &id
			}
		}
	case strings.Contains(mode, "trunk"):
		trunkRaw := row.GetString("trunking_vlans")
		if isAllVLANsToken(trunkRaw) || isFullVLANRange(trunkRaw) {
			res.Mode = model.ModeTaggedAll
		} else {
			res.Mode = model.ModeTagged
			res.TaggedVLANIDs = parseVLANList(trunkRaw)
		}
	default:
		res.Mode = model.ModeUnset
	}
	return res
}

// normalizeSwitchportNXOS must run its own dedicated branch rather than
// falling through to the IOS/EOS one: NX-OS's block uses "mode"/
// "trunking_vlans" field names that happen to overlap in spirit but not in
// shape with the IOS "admin_mode" block, and its full-range trunk
// ("1-4094") is the exact case spec.md §8 names as the historic-bug
// regression — it must fold to tagged-all, not a 4094-entry tagged set.
func normalizeSwitchportNXOS(row parse.Row) switchportResult {
	res := switchportResult{Name: row.GetString("name"), TaggedVLANIDs: map[int]struct{}{}}
	mode := strings.ToLower(row.GetString("mode"))
	switch {
	case strings.Contains(mode, "access"):
		res.Mode = model.ModeAccess
		if v := row.GetString("access_vlan"); v != "" {
			if id, ok := parseSingleVLAN(v); ok {
				res.UntaggedVLAN = &id
			}
		}
	case strings.Contains(mode, "trunk"):
		trunkRaw := row.GetString("trunking_vlans")
		if isAllVLANsToken(trunkRaw) || isFullVLANRange(trunkRaw) {
			res.Mode = model.ModeTaggedAll
		} else {
			res.Mode = model.ModeTagged
			res.TaggedVLANIDs = parseVLANList(trunkRaw)
		}
	default:
		res.Mode = model.ModeUnset
	}
	return res
}

func normalizeSwitchportQTech(row parse.Row) switchportResult {
	res := switchportResult{Name: row.GetString("name"), TaggedVLANIDs: map[int]struct{}{}}
	mode := strings.ToLower(row.GetString("MODE"))
	switch {
	case strings.Contains(mode, "access"):
		res.Mode = model.ModeAccess
		if v := row.GetString("VLAN_LISTS"); v != "" {
			if id, ok := parseSingleVLAN(v); ok {
				res.UntaggedVLAN = &id
			}
		}
	case strings.Contains(mode, "trunk"):
		listRaw := row.GetString("VLAN_LISTS")
		if isAllVLANsToken(listRaw) || isFullVLANRange(listRaw) {
			res.Mode = model.ModeTaggedAll
		} else {
			res.Mode = model.ModeTagged
			res.TaggedVLANIDs = parseVLANList(listRaw)
		}
	default:
		res.Mode = model.ModeUnset
	}
	return res
}

func parseSingleVLAN(raw string) (int, bool) {
	set := parseVLANList(strings.TrimSpace(raw))
	for id := range set {
		return id, true
	}
	return 0, false
}
