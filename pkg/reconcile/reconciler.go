package reconcile

import (
	"context"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
	"github.com/netfleet/netinv/pkg/runctx"
)

// Reconciler applies collected inventory to NetBox in the strict phase
// order spec.md §4.8 defines.
type Reconciler struct {
	API NetBoxAPI
	Run *runctx.RunContext

	// refCache memoizes get-or-create lookups for sites/roles/platforms
	// within one Sync call, satisfying the invariant that every
	// site/role/platform reference either pre-existed or was
	// get-or-created earlier in the same phase.
	refCache map[string]*netbox.Ref
}

// deviceState tracks per-device phase 1 outcome; later phases consult it
// to drop dependent entities for any device that failed to reconcile
// (spec.md §4.8 phase 1 failure semantics).
type deviceState struct {
	id     int
	failed bool
}

// Inventory bundles everything the Reconciler needs to sync in one run:
// the full desired-state snapshot (as compared by pkg/diff) plus, for
// cables, the raw LLDP-derived cable list (already deduplicated by
// pkg/normalize's LLDP dedup rule).
type Inventory struct {
	Devices    []model.Device
	Interfaces []model.Interface
	IPs        []model.IPAddress
	VLANs      []model.VLAN
	Cables     []model.Cable
	Items      []model.InventoryItem
}

// Sync runs every phase in order against inv, honoring opts. It returns
// the RunContext's accumulated summary once all phases have run (or been
// skipped under dry-run).
func (r *Reconciler) Sync(ctx context.Context, inv Inventory, opts SyncOptions) (model.RunSummary, error) {
	if err := opts.Validate(); err != nil {
		return model.RunSummary{}, err
	}
	r.refCache = make(map[string]*netbox.Ref)

	deviceIDs := r.syncDevices(ctx, inv.Devices, opts)
	r.cleanupDevices(ctx, inv.Devices, opts)
	deviceSite := make(map[string]string, len(inv.Devices))
	for _, d := range inv.Devices {
		deviceSite[d.Key()] = d.Site
	}

	ifaceIDs := r.syncInterfaces(ctx, inv.Interfaces, deviceIDs, opts)

	r.syncIPs(ctx, inv.IPs, deviceIDs, ifaceIDs, opts)

	r.syncVLANs(ctx, inv.VLANs, inv.Interfaces, deviceIDs, deviceSite, opts)

	r.syncCables(ctx, inv.Cables, ifaceIDs, opts)

	r.syncInventory(ctx, inv.Items, deviceIDs, opts)

	return r.Run.Summary(), nil
}

// resolveRef get-or-creates a site/role/platform/manufacturer reference
// by kind, memoizing within this Sync call.
func (r *Reconciler) resolveRef(ctx context.Context, kind, name string) (*netbox.Ref, error) {
	if name == "" {
		return nil, nil
	}
	key := kind + "/" + name
	if ref, ok := r.refCache[key]; ok {
		return ref, nil
	}
	var (
		ref *netbox.Ref
		err error
	)
	switch kind {
	case "site":
		ref, err = r.API.GetOrCreateSite(ctx, name)
	case "role":
		ref, err = r.API.GetOrCreateRole(ctx, name)
	case "platform":
		ref, err = r.API.GetOrCreatePlatform(ctx, name)
	case "manufacturer":
		ref, err = r.API.GetOrCreateManufacturer(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	r.refCache[key] = ref
	return ref, nil
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
