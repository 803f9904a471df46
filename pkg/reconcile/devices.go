package reconcile

import (
	"context"

	"github.com/netfleet/netinv/pkg/diff"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

// syncDevices is phase 1: create missing devices, update changed ones
// (site/role/platform; a device_type difference also triggers the update,
// but the payload carries no device type, so NetBox's device_type is
// never written), and return the NetBox object id for
// every device that is in a usable state for later phases. A device
// that fails here (create/update error) is recorded failed and omitted
// from the returned map, which removes its interfaces/IPs/cables/
// inventory from every later phase per spec.md §4.8.
func (r *Reconciler) syncDevices(ctx context.Context, devices []model.Device, opts SyncOptions) map[string]int {
	ids := make(map[string]int, len(devices))

	for _, d := range devices {
		key := d.Key()
		state, err := r.syncOneDevice(ctx, d, opts)
		if err != nil {
			r.Run.Log.WithField("device", key).WithError(err).Warn("device reconcile failed")
			r.Run.AddCounters("device", model.EntityCounters{Failed: 1})
			r.Run.RecordDevice(model.DeviceOutcome{Device: key, Errors: []string{err.Error()}})
			continue
		}
		if state.failed {
			r.Run.AddCounters("device", model.EntityCounters{Skipped: 1})
			continue
		}
		ids[key] = state.id
	}
	return ids
}

func (r *Reconciler) syncOneDevice(ctx context.Context, d model.Device, opts SyncOptions) (deviceState, error) {
	key := d.Key()

	siteRef, err := r.resolveRef(ctx, "site", d.Site)
	if err != nil {
		return deviceState{}, err
	}
	roleRef, err := r.resolveRef(ctx, "role", d.Role)
	if err != nil {
		return deviceState{}, err
	}
	platformRef, err := r.resolveRef(ctx, "platform", d.Platform)
	if err != nil {
		return deviceState{}, err
	}

	observed, err := r.API.GetDeviceByName(ctx, key)
	if err != nil {
		return deviceState{}, err
	}

	if observed == nil {
		if !opts.CreateDevices {
			return deviceState{failed: true}, nil
		}
		if opts.DryRun {
			r.Run.AddCounters("device", model.EntityCounters{Created: 1})
			return deviceState{failed: true}, nil // no real id exists yet; dependents skip in dry-run
		}
		payload := desiredNetBoxDevice(d, refIDPtr(siteRef), refIDPtr(roleRef), refIDPtr(platformRef), nil)
		created, err := r.API.CreateDevice(ctx, payload)
		if err != nil {
			return deviceState{}, err
		}
		r.Run.AddCounters("device", model.EntityCounters{Created: 1})
		return deviceState{id: created.ID}, nil
	}

	plan := diff.Devices([]model.Device{d}, []model.Device{observedDevice(*observed)})
	if len(plan.ToUpdate) > 0 {
		if !opts.UpdateDevices {
			r.Run.AddCounters("device", model.EntityCounters{Skipped: 1})
			return deviceState{id: observed.ID}, nil
		}
		if !opts.DryRun {
			payload := desiredNetBoxDevice(d, refIDPtr(siteRef), refIDPtr(roleRef), refIDPtr(platformRef), nil)
			if _, err := r.API.UpdateDevice(ctx, observed.ID, payload); err != nil {
				return deviceState{}, err
			}
		}
		r.Run.AddCounters("device", model.EntityCounters{Updated: 1})
	}
	return deviceState{id: observed.ID}, nil
}

// refIDPtr returns a pointer to ref.ID, or nil if ref itself is nil.
func refIDPtr(ref *netbox.Ref) *int {
	if ref == nil {
		return nil
	}
	id := ref.ID
	return &id
}
