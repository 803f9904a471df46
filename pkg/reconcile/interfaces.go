package reconcile

import (
	"context"
	"strings"

	"github.com/netfleet/netinv/pkg/diff"
	"github.com/netfleet/netinv/pkg/ifname"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

// syncInterfaces is phase 2. It runs two passes within the phase, per
// spec.md §4.8: pass A syncs every LAG-type interface first (these are
// parents other interfaces reference by lag_parent); pass B syncs the
// rest, resolving lag_parent through alias-expanded lookup against the
// devices' own interface set. Returns NetBox interface ids keyed by
// "device/name" for use by the IP and cable phases.
func (r *Reconciler) syncInterfaces(ctx context.Context, interfaces []model.Interface, deviceIDs map[string]int, opts SyncOptions) map[string]int {
	ids := make(map[string]int)
	if !opts.Interfaces {
		return ids
	}

	byDevice := groupInterfacesByDevice(interfaces)
	observedCache := make(map[string][]netbox.Interface)

	// Pass A: LAG parents.
	for device, ifs := range byDevice {
		deviceID, ok := deviceIDs[device]
		if !ok {
			continue // device failed phase 1; skip its interfaces entirely
		}
		observed := r.fetchInterfaces(ctx, device, deviceID, observedCache)
		for _, i := range ifs {
			if i.PortType != model.PortTypeLAG {
				continue
			}
			id, err := r.syncOneInterface(ctx, i, deviceID, observed, nil, opts)
			if err != nil {
				r.Run.Log.WithField("interface", device+"/"+i.Name).WithError(err).Warn("lag interface reconcile failed")
				r.Run.AddCounters("interface", model.EntityCounters{Failed: 1})
				continue
			}
			if id != 0 {
				ids[device+"/"+i.Name] = id
			}
		}
	}

	// Pass B: everything else, resolving lag_parent against pass A's ids
	// (and any already-observed LAG parents from NetBox).
	for device, ifs := range byDevice {
		deviceID, ok := deviceIDs[device]
		if !ok {
			continue
		}
		observed := r.fetchInterfaces(ctx, device, deviceID, observedCache)
		parents := lagCandidates(ifs)
		for _, i := range ifs {
			if i.PortType == model.PortTypeLAG {
				continue
			}
			var lagObjID *int
			if i.LAGParent != "" {
				if idx, ok := ifname.MatchByAlias(parents, i.LAGParent); ok {
					if id, ok := ids[device+"/"+parents[idx].Name]; ok {
						lagObjID = intPtr(id)
					}
				}
				if lagObjID == nil {
					if nbID, ok := findObservedLAGID(observed, i.LAGParent); ok {
						lagObjID = intPtr(nbID)
					}
				}
				if lagObjID == nil {
					r.Run.Log.WithField("interface", device+"/"+i.Name).
						WithField("lag_parent", i.LAGParent).
						Warn("lag parent not found; writing member without parent link")
				}
			}
			id, err := r.syncOneInterface(ctx, i, deviceID, observed, lagObjID, opts)
			if err != nil {
				r.Run.Log.WithField("interface", device+"/"+i.Name).WithError(err).Warn("interface reconcile failed")
				r.Run.AddCounters("interface", model.EntityCounters{Failed: 1})
				continue
			}
			if id != 0 {
				ids[device+"/"+i.Name] = id
			}
		}
	}

	return ids
}

func (r *Reconciler) fetchInterfaces(ctx context.Context, device string, deviceID int, cache map[string][]netbox.Interface) []netbox.Interface {
	if v, ok := cache[device]; ok {
		return v
	}
	observed, err := r.API.ListInterfaces(ctx, deviceID)
	if err != nil {
		r.Run.Log.WithField("device", device).WithError(err).Warn("listing observed interfaces failed")
		observed = nil
	}
	cache[device] = observed
	return observed
}

func (r *Reconciler) syncOneInterface(ctx context.Context, i model.Interface, deviceID int, observed []netbox.Interface, lagObjID *int, opts SyncOptions) (int, error) {
	match := findObservedInterface(observed, i.Name)

	if match == nil {
		if opts.DryRun {
			r.Run.AddCounters("interface", model.EntityCounters{Created: 1})
			return 0, nil
		}
		payload := desiredNetBoxInterface(i, deviceID, nil, nil, lagObjID)
		created, err := r.API.CreateInterface(ctx, payload)
		if err != nil {
			return 0, err
		}
		r.Run.AddCounters("interface", model.EntityCounters{Created: 1})
		return created.ID, nil
	}

	plan := diff.Interfaces([]model.Interface{i}, []model.Interface{observedInterface(i.Device, *match)})
	if len(plan.ToUpdate) > 0 {
		if !opts.DryRun {
			payload := desiredNetBoxInterface(i, deviceID, nil, nil, lagObjID)
			if _, err := r.API.UpdateInterface(ctx, match.ID, payload); err != nil {
				return 0, err
			}
		}
		r.Run.AddCounters("interface", model.EntityCounters{Updated: 1})
	}
	return match.ID, nil
}

func groupInterfacesByDevice(interfaces []model.Interface) map[string][]model.Interface {
	out := make(map[string][]model.Interface)
	for _, i := range interfaces {
		out[i.Device] = append(out[i.Device], i)
	}
	return out
}

func lagCandidates(ifs []model.Interface) []model.Interface {
	var out []model.Interface
	for _, i := range ifs {
		if i.PortType == model.PortTypeLAG {
			out = append(out, i)
		}
	}
	return out
}

func findObservedInterface(observed []netbox.Interface, name string) *netbox.Interface {
	for idx := range observed {
		if strings.EqualFold(observed[idx].Name, name) {
			return &observed[idx]
		}
	}
	return nil
}

func findObservedLAGID(observed []netbox.Interface, name string) (int, bool) {
	for _, o := range observed {
		if strings.EqualFold(o.Name, name) && o.Type == string(model.PortTypeLAG) {
			return o.ID, true
		}
	}
	return 0, false
}
