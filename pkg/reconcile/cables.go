package reconcile

import (
	"context"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

// syncCables is phase 5: create cables from LLDP/CDP-derived endpoint
// pairs. Both endpoints must resolve to interfaces already synced in
// phase 2; an unresolved endpoint causes the whole cable to be skipped
// with a warning, per spec.md §4.8. model.Cable.Key() already makes A-B
// and B-A equivalent, so no additional dedup is needed here.
func (r *Reconciler) syncCables(ctx context.Context, cables []model.Cable, ifaceIDs map[string]int, opts SyncOptions) {
	if !opts.Cables {
		return
	}

	for _, c := range cables {
		aID, aOK := ifaceIDs[c.EndpointA.Device+"/"+c.EndpointA.Interface]
		bID, bOK := ifaceIDs[c.EndpointB.Device+"/"+c.EndpointB.Interface]
		if !aOK || !bOK {
			r.Run.Log.WithField("cable", c.Key()).Warn("cable endpoint did not resolve to a synced interface; skipping")
			r.Run.AddCounters("cable", model.EntityCounters{Skipped: 1})
			continue
		}

		if opts.DryRun {
			r.Run.AddCounters("cable", model.EntityCounters{Created: 1})
			continue
		}

		_, err := r.API.CreateCable(ctx, netbox.Cable{
			Status:        "connected",
			ATerminations: []netbox.CableTermination{{ObjectType: "dcim.interface", ObjectID: aID}},
			BTerminations: []netbox.CableTermination{{ObjectType: "dcim.interface", ObjectID: bID}},
		})
		if err != nil {
			r.Run.Log.WithField("cable", c.Key()).WithError(err).Warn("cable creation failed")
			r.Run.AddCounters("cable", model.EntityCounters{Failed: 1})
			continue
		}
		r.Run.AddCounters("cable", model.EntityCounters{Created: 1})
	}
}
