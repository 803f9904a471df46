package normalize

import (
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// LLDP converts parsed LLDP/CDP neighbor rows into canonical LLDPNeighbor
// records for one device, deduplicating by (local_device, local_interface,
// remote_hostname, remote_interface) per spec.md §4.4.
func LLDP(rows []parse.Row, device string) []model.LLDPNeighbor {
	seen := map[string]struct{}{}
	out := make([]model.LLDPNeighbor, 0, len(rows))
	for _, row := range rows {
		localIface := row.GetString("local_interface")
		if localIface == "" {
			continue
		}
		n := model.LLDPNeighbor{
			LocalDevice:       device,
			LocalInterface:    localIface,
			RemoteHostname:    row.GetString("remote_hostname"),
			RemoteMAC:         canonicalizeMAC(row.GetString("remote_mac")),
			RemoteIP:          row.GetString("remote_ip"),
			RemoteInterface:   row.GetString("remote_interface"),
			RemotePlatform:    row.GetString("remote_platform"),
			RemoteDescription: row.GetString("remote_description"),
		}
		_, n.NeighborType = n.RemoteIdentity()

		key := device + "|" + localIface + "|" + n.RemoteHostname + "|" + n.RemoteInterface
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, n)
	}
	return out
}
