package reconcile

import "fmt"

// SyncOptions is the additive flag set spec.md §6 defines for
// `sync-netbox`: each entity kind is synced only when its flag (or
// SyncAll) is set, Cleanup additionally requires Tenant, and DryRun
// defaults true for any destructive combination the CLI did not
// explicitly disable (enforced by the CLI layer; Reconciler itself just
// honors whatever DryRun value it is given).
type SyncOptions struct {
	CreateDevices bool
	UpdateDevices bool
	Interfaces    bool
	IPAddresses   bool
	Cables        bool
	VLANs         bool
	Inventory     bool
	Cleanup       bool

	DryRun bool

	Site   string
	Role   string
	Tenant string
}

// Validate enforces spec.md §6's "--cleanup requires --tenant" rule.
// The CLI is expected to check this too (so the user sees the error
// before any network call), but the core re-checks it so a caller cannot
// accidentally run a tenant-unscoped delete by calling Reconciler
// directly.
func (o SyncOptions) Validate() error {
	if o.Cleanup && o.Tenant == "" {
		return fmt.Errorf("sync: --cleanup requires --tenant")
	}
	return nil
}
