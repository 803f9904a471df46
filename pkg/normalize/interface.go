package normalize

import (
	"strconv"

	"github.com/netfleet/netinv/pkg/ifname"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// Interfaces converts parsed "show interfaces" rows into canonical
// Interface records for one device. Switchport mode, LAG membership, and
// media-type refinement are not set here — they come from
// EnrichWithSwitchport/EnrichWithLAG/EnrichWithMediaType, run against the
// separate secondary-intent rows per spec.md §4.6.
func Interfaces(rows []parse.Row, device string) []model.Interface {
	out := make([]model.Interface, 0, len(rows))
	for _, row := range rows {
		raw := row.GetString("name")
		if raw == "" {
			continue
		}
		long, short, aliases := ifname.Canonicalize(raw)

		iface := model.Interface{
			Name:        long,
			ShortName:   short,
			Aliases:     aliases,
			Device:      device,
			Description: row.GetString("description"),
			MAC:         canonicalizeMAC(row.GetString("mac")),
			Mode:        model.ModeUnset,
		}
		if enabled, ok := row["enabled"].(bool); ok {
			iface.Enabled = enabled
		}
		if mtu := row.GetString("mtu"); mtu != "" {
			if v, err := strconv.Atoi(mtu); err == nil {
				iface.MTU = v
			}
		}
		if speed := row.GetString("speed_bps"); speed != "" {
			if v, err := strconv.ParseUint(speed, 10, 64); err == nil {
				iface.SpeedBPS = v
			}
		}
		iface.IP4 = row.GetString("ip4")
		if p := row.GetString("ip4_prefix"); p != "" {
			if v, err := strconv.Atoi(p); err == nil {
				iface.IP4Prefix = v
			}
		}

		var explicit model.PortType
		if pt, ok := row["port_type"].(model.PortType); ok {
			explicit = pt
		}
		iface.PortType = derivePortType(explicit, row.GetString("media_type"), row.GetString("hardware_type"), long)
		iface.NBType = deriveNBType(iface.PortType, iface.SpeedBPS)

		out = append(out, iface)
	}
	return out
}

// EnrichWithLAG sets lag_parent on every interface whose canonical or
// aliased name appears as a member in membership rows (from a LAG/
// port-channel/AggregatePort summary parse), per spec.md §4.4's
// enrich_with_lag.
func EnrichWithLAG(interfaces []model.Interface, membership []parse.Row) []model.Interface {
	for _, m := range membership {
		member := m.GetString("member")
		parent := m.GetString("lag_parent")
		if member == "" || parent == "" {
			continue
		}
		long, _, _ := ifname.Canonicalize(parent)
		idx, ok := ifname.MatchByAlias(interfaces, member)
		if !ok {
			continue
		}
		interfaces[idx].LAGParent = long
	}
	return interfaces
}

// EnrichWithSwitchport applies normalizeSwitchport's dialect-tagged result
// to every matching interface, via alias-expanded lookup per spec.md
// §4.4's enrich_with_switchport.
func EnrichWithSwitchport(interfaces []model.Interface, swRows []parse.Row) []model.Interface {
	for _, row := range swRows {
		res, ok := normalizeSwitchport(row)
		if !ok || res.Name == "" {
			continue
		}
		idx, found := ifname.MatchByAlias(interfaces, res.Name)
		if !found {
			continue
		}
		interfaces[idx].Mode = res.Mode
		interfaces[idx].UntaggedVLANID = res.UntaggedVLAN
		interfaces[idx].TaggedVLANIDs = res.TaggedVLANIDs
	}
	return interfaces
}

// EnrichWithMediaType refines NBType for interfaces whose media_type
// wasn't available from the primary "show interfaces" parse but is
// reported by a separate transceiver/media command, per spec.md §4.4's
// enrich_with_media_type.
func EnrichWithMediaType(interfaces []model.Interface, mediaRows []parse.Row) []model.Interface {
	for _, row := range mediaRows {
		name := row.GetString("name")
		media := row.GetString("media_type")
		if name == "" || media == "" {
			continue
		}
		idx, found := ifname.MatchByAlias(interfaces, name)
		if !found {
			continue
		}
		if pt, ok := mediaHintToPortType(media); ok {
			interfaces[idx].PortType = pt
			interfaces[idx].NBType = deriveNBType(pt, interfaces[idx].SpeedBPS)
		}
	}
	return interfaces
}
