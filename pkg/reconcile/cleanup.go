package reconcile

import (
	"context"

	"github.com/netfleet/netinv/pkg/diff"
	"github.com/netfleet/netinv/pkg/model"
)

// cleanupDevices deletes NetBox devices that are observed within the
// tenant/site/role scope but absent from desired, per spec.md §4.7's
// to_delete semantics and §6's "--cleanup requires --tenant" gate
// (already enforced by SyncOptions.Validate before this is ever called).
// Deleting a device is expected to cascade its interfaces/IPs/cables/
// inventory items in NetBox, so this runs after the create/update
// phases rather than interleaved with them.
func (r *Reconciler) cleanupDevices(ctx context.Context, desired []model.Device, opts SyncOptions) {
	if !opts.Cleanup {
		return
	}

	filter := map[string]string{"tenant": opts.Tenant}
	if opts.Site != "" {
		filter["site"] = opts.Site
	}
	if opts.Role != "" {
		filter["role"] = opts.Role
	}

	observedNB, err := r.API.ListDevices(ctx, filter)
	if err != nil {
		r.Run.Log.WithError(err).Warn("cleanup: listing observed devices failed; skipping device cleanup")
		return
	}

	var observed []model.Device
	idByKey := make(map[string]int, len(observedNB))
	for _, nb := range observedNB {
		m := observedDevice(nb)
		observed = append(observed, m)
		idByKey[m.Key()] = nb.ID
	}

	plan := diff.Devices(desired, observed)
	for _, toDelete := range plan.ToDelete {
		d, ok := toDelete.(model.Device)
		if !ok {
			continue
		}
		id, ok := idByKey[d.Key()]
		if !ok {
			continue
		}
		if opts.DryRun {
			r.Run.AddCounters("device", model.EntityCounters{Deleted: 1})
			continue
		}
		if err := r.API.DeleteDevice(ctx, id); err != nil {
			r.Run.Log.WithField("device", d.Key()).WithError(err).Warn("device cleanup delete failed")
			r.Run.AddCounters("device", model.EntityCounters{Failed: 1})
			continue
		}
		r.Run.AddCounters("device", model.EntityCounters{Deleted: 1})
	}
}
