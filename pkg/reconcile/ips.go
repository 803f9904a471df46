package reconcile

import (
	"context"
	"strings"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

// syncIPs is phase 3: attach addresses to interfaces already synced in
// phase 2, then set each device's primary IP where the collected record
// marked one.
func (r *Reconciler) syncIPs(ctx context.Context, ips []model.IPAddress, deviceIDs, ifaceIDs map[string]int, opts SyncOptions) {
	if !opts.IPAddresses {
		return
	}

	observedCache := make(map[int][]netbox.IPAddress)

	for _, ip := range ips {
		deviceID, ok := deviceIDs[ip.Device]
		if !ok {
			continue // dependent on a device that failed phase 1
		}
		ifaceID, ok := ifaceIDs[ip.Device+"/"+ip.Interface]
		if !ok {
			r.Run.Log.WithField("ip", ip.Key()).Warn("ip address references an interface that was not synced; skipping")
			r.Run.AddCounters("ip", model.EntityCounters{Skipped: 1})
			continue
		}

		id, err := r.syncOneIP(ctx, ip, deviceID, ifaceID, observedCache, opts)
		if err != nil {
			r.Run.Log.WithField("ip", ip.Key()).WithError(err).Warn("ip address reconcile failed")
			r.Run.AddCounters("ip", model.EntityCounters{Failed: 1})
			continue
		}

		if ip.Primary && id != 0 && !opts.DryRun {
			if err := r.API.SetDevicePrimaryIP(ctx, deviceID, id); err != nil {
				r.Run.Log.WithField("ip", ip.Key()).WithError(err).Warn("setting primary ip failed")
			}
		}
	}
}

func (r *Reconciler) syncOneIP(ctx context.Context, ip model.IPAddress, deviceID, ifaceID int, cache map[int][]netbox.IPAddress, opts SyncOptions) (int, error) {
	observed, ok := cache[deviceID]
	if !ok {
		var err error
		observed, err = r.API.ListIPAddresses(ctx, deviceID)
		if err != nil {
			observed = nil
		}
		cache[deviceID] = observed
	}

	for _, o := range observed {
		if strings.EqualFold(o.Address, ip.Address) {
			return o.ID, nil
		}
	}

	if opts.DryRun {
		r.Run.AddCounters("ip", model.EntityCounters{Created: 1})
		return 0, nil
	}

	created, err := r.API.CreateIPAddress(ctx, netbox.IPAddress{
		Address:          ip.Address,
		AssignedObjectID: ifaceID,
		Status:           "active",
	})
	if err != nil {
		return 0, err
	}
	r.Run.AddCounters("ip", model.EntityCounters{Created: 1})
	return created.ID, nil
}
