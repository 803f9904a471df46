package reconcile

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

var reSVIName = regexp.MustCompile(`(?i)^vlan\s*0*([0-9]{1,4})$`)

// syncVLANs is phase 4: create VLANs explicitly provided plus any
// additionally implied by SVI interfaces (Vlan<vid> -> vid; name
// defaults to the SVI's description, else "VLAN <vid>"), per spec.md
// §4.8. Returns NetBox VLAN object ids keyed by "site/vid" for any later
// phase that needs them (none currently do, but interfaces' tagged/
// untagged vlan object ids would resolve through this map once wired).
func (r *Reconciler) syncVLANs(ctx context.Context, vlans []model.VLAN, interfaces []model.Interface, deviceIDs map[string]int, deviceSite map[string]string, opts SyncOptions) map[string]int {
	ids := make(map[string]int)
	if !opts.VLANs {
		return ids
	}

	all := append([]model.VLAN{}, vlans...)
	all = append(all, deriveVLANsFromSVIs(interfaces, deviceIDs, deviceSite, vlans)...)

	seen := make(map[string]struct{})
	for _, v := range all {
		key := fmt.Sprintf("%s/%d", v.Site, v.VID)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		siteRef, err := r.resolveRef(ctx, "site", v.Site)
		if err != nil || siteRef == nil {
			r.Run.Log.WithField("vlan", key).Warn("vlan's site could not be resolved; skipping")
			r.Run.AddCounters("vlan", model.EntityCounters{Skipped: 1})
			continue
		}

		observed, err := r.API.GetVLANByVIDAndSite(ctx, v.VID, siteRef.ID)
		if err != nil {
			r.Run.Log.WithField("vlan", key).WithError(err).Warn("vlan reconcile failed")
			r.Run.AddCounters("vlan", model.EntityCounters{Failed: 1})
			continue
		}
		if observed != nil {
			ids[key] = observed.ID
			continue
		}

		if opts.DryRun {
			r.Run.AddCounters("vlan", model.EntityCounters{Created: 1})
			continue
		}
		created, err := r.API.CreateVLAN(ctx, netbox.VLAN{VID: v.VID, Name: v.Name, Site: &netbox.Ref{ID: siteRef.ID}, Status: "active"})
		if err != nil {
			r.Run.Log.WithField("vlan", key).WithError(err).Warn("vlan creation failed")
			r.Run.AddCounters("vlan", model.EntityCounters{Failed: 1})
			continue
		}
		r.Run.AddCounters("vlan", model.EntityCounters{Created: 1})
		ids[key] = created.ID
	}

	return ids
}

// deriveVLANsFromSVIs scans for SVI-named interfaces (Vlan10, vlan 20,
// ...) on devices that reconciled successfully and turns each into a
// model.VLAN, skipping any vid+site already present in explicit.
func deriveVLANsFromSVIs(interfaces []model.Interface, deviceIDs map[string]int, deviceSite map[string]string, explicit []model.VLAN) []model.VLAN {
	explicitKeys := make(map[string]struct{}, len(explicit))
	for _, v := range explicit {
		explicitKeys[fmt.Sprintf("%s/%d", v.Site, v.VID)] = struct{}{}
	}

	var derived []model.VLAN
	for _, i := range interfaces {
		if _, ok := deviceIDs[i.Device]; !ok {
			continue
		}
		m := reSVIName.FindStringSubmatch(strings.TrimSpace(i.Name))
		if m == nil {
			continue
		}
		vid, err := strconv.Atoi(m[1])
		if err != nil || vid < 1 || vid > 4094 {
			continue
		}
		site := deviceSite[i.Device]
		if _, dup := explicitKeys[fmt.Sprintf("%s/%d", site, vid)]; dup {
			continue
		}
		name := i.Description
		if name == "" {
			name = fmt.Sprintf("VLAN %d", vid)
		}
		derived = append(derived, model.VLAN{VID: vid, Name: name, Site: site, Status: "active"})
	}
	return derived
}
