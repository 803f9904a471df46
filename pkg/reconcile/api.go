// Package reconcile implements NetBoxReconciler, spec.md §4.8: a strictly
// ordered, phased sync of collected inventory into NetBox (devices →
// interfaces (LAG two-pass) → IP addresses → VLANs → cables → inventory
// items), honoring dry-run and an explicit, tenant-gated cleanup flag for
// deletions.
package reconcile

import (
	"context"

	"github.com/netfleet/netinv/pkg/netbox"
)

// NetBoxAPI is the subset of pkg/netbox.Client the Reconciler depends on,
// declared locally so tests can drive the phases against an in-memory
// fake instead of an httptest server — the same dependency-inversion seam
// pkg/collector uses for CommandRunner/SessionOpener.
type NetBoxAPI interface {
	GetDeviceByName(ctx context.Context, name string) (*netbox.Device, error)
	ListDevices(ctx context.Context, filter map[string]string) ([]netbox.Device, error)
	CreateDevice(ctx context.Context, d netbox.Device) (*netbox.Device, error)
	UpdateDevice(ctx context.Context, id int, patch netbox.Device) (*netbox.Device, error)
	DeleteDevice(ctx context.Context, id int) error

	ListInterfaces(ctx context.Context, deviceID int) ([]netbox.Interface, error)
	CreateInterface(ctx context.Context, i netbox.Interface) (*netbox.Interface, error)
	UpdateInterface(ctx context.Context, id int, patch netbox.Interface) (*netbox.Interface, error)
	DeleteInterface(ctx context.Context, id int) error

	ListIPAddresses(ctx context.Context, deviceID int) ([]netbox.IPAddress, error)
	CreateIPAddress(ctx context.Context, ip netbox.IPAddress) (*netbox.IPAddress, error)
	UpdateIPAddress(ctx context.Context, id int, patch netbox.IPAddress) (*netbox.IPAddress, error)
	SetDevicePrimaryIP(ctx context.Context, deviceID, ipID int) error
	DeleteIPAddress(ctx context.Context, id int) error

	GetVLANByVIDAndSite(ctx context.Context, vid int, siteID int) (*netbox.VLAN, error)
	CreateVLAN(ctx context.Context, v netbox.VLAN) (*netbox.VLAN, error)
	DeleteVLAN(ctx context.Context, id int) error

	CreateCable(ctx context.Context, cable netbox.Cable) (*netbox.Cable, error)
	DeleteCable(ctx context.Context, id int) error

	CreateInventoryItem(ctx context.Context, item netbox.InventoryItem) (*netbox.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int, patch netbox.InventoryItem) (*netbox.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int) error

	GetOrCreateSite(ctx context.Context, name string) (*netbox.Ref, error)
	GetOrCreateRole(ctx context.Context, name string) (*netbox.Ref, error)
	GetOrCreatePlatform(ctx context.Context, name string) (*netbox.Ref, error)
	GetOrCreateManufacturer(ctx context.Context, name string) (*netbox.Ref, error)
	GetOrCreateDeviceType(ctx context.Context, manufacturerID int, model string) (*netbox.Ref, error)
}

var _ NetBoxAPI = (*netbox.Client)(nil)
