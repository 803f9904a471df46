package normalize

import (
	"github.com/netfleet/netinv/pkg/ifname"
	"github.com/netfleet/netinv/pkg/model"
)

// CablesFromLLDP builds the desired cable list from LLDP/CDP-derived
// adjacencies, per spec.md §4.8 phase 5. Only neighbors identified by
// hostname (the natural key a synced device is known by) with a remote
// interface are candidate cables; mac/ip-identified or interface-less
// neighbors cannot resolve to a device+interface pair in NetBox and are
// dropped here rather than surfacing as reconciliation warnings later.
// Cable.Key() already makes the A-B/B-A pair order-independent, so a
// link both ends report collapses to one entry.
func CablesFromLLDP(neighbors []model.LLDPNeighbor) []model.Cable {
	seen := make(map[string]struct{})
	var out []model.Cable
	for _, n := range neighbors {
		if n.NeighborType != model.NeighborHostname || n.RemoteInterface == "" {
			continue
		}
		localLong, _, _ := ifname.Canonicalize(n.LocalInterface)
		remoteLong, _, _ := ifname.Canonicalize(n.RemoteInterface)
		c := model.Cable{
			EndpointA: model.CableEndpoint{Device: n.LocalDevice, Interface: localLong},
			EndpointB: model.CableEndpoint{Device: n.RemoteHostname, Interface: remoteLong},
			Status:    "connected",
		}
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
