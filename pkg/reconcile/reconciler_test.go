package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
	"github.com/netfleet/netinv/pkg/runctx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeNetBoxAPI is an in-memory stand-in for *netbox.Client, following the
// fakeSession/fakeOpener pattern pkg/collector's engine tests use to drive
// the phases without a live NetBox server.
type fakeNetBoxAPI struct {
	devices    map[string]*netbox.Device // keyed by name
	interfaces map[int][]netbox.Interface
	ips        map[int][]netbox.IPAddress
	vlans      map[string]*netbox.VLAN // keyed by "site/vid"
	refs       map[string]*netbox.Ref  // keyed by "kind/name"

	nextID int

	deletedDeviceIDs []int
	createdCables    []netbox.Cable
	createdInventory []netbox.InventoryItem
	primaryIPSet     map[int]int // deviceID -> ipID

	failCreateDevice map[string]bool // device name -> force CreateDevice error
}

func newFakeNetBoxAPI() *fakeNetBoxAPI {
	return &fakeNetBoxAPI{
		devices:          make(map[string]*netbox.Device),
		interfaces:       make(map[int][]netbox.Interface),
		ips:              make(map[int][]netbox.IPAddress),
		vlans:            make(map[string]*netbox.VLAN),
		refs:             make(map[string]*netbox.Ref),
		primaryIPSet:     make(map[int]int),
		failCreateDevice: make(map[string]bool),
	}
}

func (f *fakeNetBoxAPI) newID() int {
	f.nextID++
	return f.nextID
}

func (f *fakeNetBoxAPI) GetDeviceByName(ctx context.Context, name string) (*netbox.Device, error) {
	if d, ok := f.devices[name]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeNetBoxAPI) ListDevices(ctx context.Context, filter map[string]string) ([]netbox.Device, error) {
	var out []netbox.Device
	for _, d := range f.devices {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeNetBoxAPI) CreateDevice(ctx context.Context, d netbox.Device) (*netbox.Device, error) {
	if f.failCreateDevice[d.Name] {
		return nil, fmt.Errorf("fake: create device %s rejected", d.Name)
	}
	d.ID = f.newID()
	f.devices[d.Name] = &d
	return &d, nil
}

func (f *fakeNetBoxAPI) UpdateDevice(ctx context.Context, id int, patch netbox.Device) (*netbox.Device, error) {
	for name, d := range f.devices {
		if d.ID == id {
			patch.ID = id
			f.devices[name] = &patch
			return &patch, nil
		}
	}
	return nil, fmt.Errorf("fake: device id %d not found", id)
}

func (f *fakeNetBoxAPI) DeleteDevice(ctx context.Context, id int) error {
	f.deletedDeviceIDs = append(f.deletedDeviceIDs, id)
	for name, d := range f.devices {
		if d.ID == id {
			delete(f.devices, name)
			return nil
		}
	}
	return nil
}

func (f *fakeNetBoxAPI) ListInterfaces(ctx context.Context, deviceID int) ([]netbox.Interface, error) {
	return f.interfaces[deviceID], nil
}

func (f *fakeNetBoxAPI) CreateInterface(ctx context.Context, i netbox.Interface) (*netbox.Interface, error) {
	i.ID = f.newID()
	deviceID := 0
	if i.Device != nil {
		deviceID = i.Device.ID
	}
	f.interfaces[deviceID] = append(f.interfaces[deviceID], i)
	return &i, nil
}

func (f *fakeNetBoxAPI) UpdateInterface(ctx context.Context, id int, patch netbox.Interface) (*netbox.Interface, error) {
	for deviceID, ifs := range f.interfaces {
		for idx, existing := range ifs {
			if existing.ID == id {
				patch.ID = id
				f.interfaces[deviceID][idx] = patch
				return &patch, nil
			}
		}
	}
	return nil, fmt.Errorf("fake: interface id %d not found", id)
}

func (f *fakeNetBoxAPI) DeleteInterface(ctx context.Context, id int) error { return nil }

func (f *fakeNetBoxAPI) ListIPAddresses(ctx context.Context, deviceID int) ([]netbox.IPAddress, error) {
	return f.ips[deviceID], nil
}

func (f *fakeNetBoxAPI) CreateIPAddress(ctx context.Context, ip netbox.IPAddress) (*netbox.IPAddress, error) {
	ip.ID = f.newID()
	// Associate with whichever device owns the assigned interface.
	for deviceID, ifs := range f.interfaces {
		for _, i := range ifs {
			if i.ID == ip.AssignedObjectID {
				f.ips[deviceID] = append(f.ips[deviceID], ip)
			}
		}
	}
	return &ip, nil
}

func (f *fakeNetBoxAPI) UpdateIPAddress(ctx context.Context, id int, patch netbox.IPAddress) (*netbox.IPAddress, error) {
	return &patch, nil
}

func (f *fakeNetBoxAPI) SetDevicePrimaryIP(ctx context.Context, deviceID, ipID int) error {
	f.primaryIPSet[deviceID] = ipID
	return nil
}

func (f *fakeNetBoxAPI) DeleteIPAddress(ctx context.Context, id int) error { return nil }

func (f *fakeNetBoxAPI) GetVLANByVIDAndSite(ctx context.Context, vid int, siteID int) (*netbox.VLAN, error) {
	key := fmt.Sprintf("%d/%d", siteID, vid)
	if v, ok := f.vlans[key]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeNetBoxAPI) CreateVLAN(ctx context.Context, v netbox.VLAN) (*netbox.VLAN, error) {
	v.ID = f.newID()
	siteID := 0
	if v.Site != nil {
		siteID = v.Site.ID
	}
	f.vlans[fmt.Sprintf("%d/%d", siteID, v.VID)] = &v
	return &v, nil
}

func (f *fakeNetBoxAPI) DeleteVLAN(ctx context.Context, id int) error { return nil }

func (f *fakeNetBoxAPI) CreateCable(ctx context.Context, cable netbox.Cable) (*netbox.Cable, error) {
	cable.ID = f.newID()
	f.createdCables = append(f.createdCables, cable)
	return &cable, nil
}

func (f *fakeNetBoxAPI) DeleteCable(ctx context.Context, id int) error { return nil }

func (f *fakeNetBoxAPI) CreateInventoryItem(ctx context.Context, item netbox.InventoryItem) (*netbox.InventoryItem, error) {
	item.ID = f.newID()
	f.createdInventory = append(f.createdInventory, item)
	return &item, nil
}

func (f *fakeNetBoxAPI) UpdateInventoryItem(ctx context.Context, id int, patch netbox.InventoryItem) (*netbox.InventoryItem, error) {
	return &patch, nil
}

func (f *fakeNetBoxAPI) DeleteInventoryItem(ctx context.Context, id int) error { return nil }

func (f *fakeNetBoxAPI) getOrCreateRef(kind, name string) (*netbox.Ref, error) {
	if name == "" {
		return nil, nil
	}
	key := kind + "/" + name
	if ref, ok := f.refs[key]; ok {
		return ref, nil
	}
	ref := &netbox.Ref{ID: f.newID(), Name: name}
	f.refs[key] = ref
	return ref, nil
}

func (f *fakeNetBoxAPI) GetOrCreateSite(ctx context.Context, name string) (*netbox.Ref, error) {
	return f.getOrCreateRef("site", name)
}

func (f *fakeNetBoxAPI) GetOrCreateRole(ctx context.Context, name string) (*netbox.Ref, error) {
	return f.getOrCreateRef("role", name)
}

func (f *fakeNetBoxAPI) GetOrCreatePlatform(ctx context.Context, name string) (*netbox.Ref, error) {
	return f.getOrCreateRef("platform", name)
}

func (f *fakeNetBoxAPI) GetOrCreateManufacturer(ctx context.Context, name string) (*netbox.Ref, error) {
	return f.getOrCreateRef("manufacturer", name)
}

func (f *fakeNetBoxAPI) GetOrCreateDeviceType(ctx context.Context, manufacturerID int, modelName string) (*netbox.Ref, error) {
	return f.getOrCreateRef("device_type", modelName)
}

var _ NetBoxAPI = (*fakeNetBoxAPI)(nil)

func newTestReconciler(api *fakeNetBoxAPI) *Reconciler {
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	return &Reconciler{API: api, Run: runctx.New(false, logger)}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func fullOptions() SyncOptions {
	return SyncOptions{
		CreateDevices: true,
		UpdateDevices: true,
		Interfaces:    true,
		IPAddresses:   true,
		Cables:        true,
		VLANs:         true,
		Inventory:     true,
	}
}

func TestSyncCreatesNewDevice(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"}},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["device"].Created)
	require.Contains(t, api.devices, "sw1")
}

func TestLAGParentResolvesRegardlessOfIterationOrder(t *testing.T) {
	// Member interface listed before its LAG parent in the slice; the
	// two-pass phase 2 must still resolve lag_parent correctly.
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "qtech"}},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper, LAGParent: "Po1"},
			{Device: "sw1", Name: "Po1", Enabled: true, PortType: model.PortTypeLAG},
		},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Counters["interface"].Failed)

	ifs := api.interfaces[api.devices["sw1"].ID]
	var member *netbox.Interface
	for idx := range ifs {
		if ifs[idx].Name == "Gi0/1" {
			member = &ifs[idx]
		}
	}
	require.NotNil(t, member)
	require.NotNil(t, member.LAGInterface)

	var parent *netbox.Interface
	for idx := range ifs {
		if ifs[idx].Name == "Po1" {
			parent = &ifs[idx]
		}
	}
	require.NotNil(t, parent)
	require.Equal(t, parent.ID, *member.LAGInterface)
}

func TestMissingLAGParentLogsWarningButStillWritesMember(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "qtech"}},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper, LAGParent: "Po9"},
		},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Counters["interface"].Failed)

	ifs := api.interfaces[api.devices["sw1"].ID]
	require.Len(t, ifs, 1)
	require.Equal(t, "Gi0/1", ifs[0].Name)
	require.Nil(t, ifs[0].LAGInterface)
}

func TestCableFromBidirectionalObservationProducesExactlyOneCable(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{
			{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"},
			{Name: "sw2", Site: "dc1", Role: "access", Platform: "cisco_ios"},
		},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper},
			{Device: "sw2", Name: "Gi0/2", Enabled: true, PortType: model.PortTypeAccessCopper},
		},
		// Both directions of the same LLDP observation collapse to one
		// cable via Cable.Key()'s order-independence before reconciliation
		// even sees them, so the phase receives that single cable; confirm
		// it creates exactly one.
		Cables: []model.Cable{
			{EndpointA: model.CableEndpoint{Device: "sw1", Interface: "Gi0/1"}, EndpointB: model.CableEndpoint{Device: "sw2", Interface: "Gi0/2"}, Status: "connected"},
		},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["cable"].Created)
	require.Len(t, api.createdCables, 1)
}

func TestCableSkippedWhenEndpointInterfaceNotSynced(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{
			{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"},
		},
		Cables: []model.Cable{
			{EndpointA: model.CableEndpoint{Device: "sw1", Interface: "Gi0/1"}, EndpointB: model.CableEndpoint{Device: "sw2", Interface: "Gi0/2"}, Status: "connected"},
		},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 0, summary.Counters["cable"].Created)
	require.Equal(t, 1, summary.Counters["cable"].Skipped)
}

func TestDeviceFailureRemovesDependents(t *testing.T) {
	api := newFakeNetBoxAPI()
	api.failCreateDevice["sw1"] = true
	r := newTestReconciler(api)

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"}},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper},
		},
		IPs: []model.IPAddress{
			{Device: "sw1", Interface: "Gi0/1", Address: "10.0.0.1/24"},
		},
	}
	summary, err := r.Sync(context.Background(), inv, fullOptions())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["device"].Failed)
	require.Zero(t, summary.Counters["interface"].Created)
	require.Zero(t, summary.Counters["ip"].Created)
}

func TestDryRunProducesNoMutatingCalls(t *testing.T) {
	// A device that already exists gets a real id even under dry-run (its
	// id comes from GetDeviceByName, not a create), so its dependents can
	// still be previewed; a brand-new device has no real id to attach
	// dependents to until it is actually created.
	api := newFakeNetBoxAPI()
	api.devices["sw1"] = &netbox.Device{ID: 7, Name: "sw1", Status: "active"}
	r := newTestReconciler(api)

	opts := fullOptions()
	opts.DryRun = true

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"}},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper},
		},
	}
	summary, err := r.Sync(context.Background(), inv, opts)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["interface"].Created)
	require.Empty(t, api.interfaces)

	createdDevice, err := api.GetDeviceByName(context.Background(), "sw1")
	require.NoError(t, err)
	require.Equal(t, "sw1", createdDevice.Name)
	// no site/role/platform was actually written to the existing record
	require.Empty(t, createdDevice.Site)
}

func TestDryRunNewDeviceSkipsDependentsButCountsTheDevice(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	opts := fullOptions()
	opts.DryRun = true

	inv := Inventory{
		Devices: []model.Device{{Name: "sw1", Site: "dc1", Role: "access", Platform: "cisco_ios"}},
		Interfaces: []model.Interface{
			{Device: "sw1", Name: "Gi0/1", Enabled: true, PortType: model.PortTypeAccessCopper},
		},
	}
	summary, err := r.Sync(context.Background(), inv, opts)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["device"].Created)
	require.Equal(t, 0, summary.Counters["interface"].Created)
	require.Empty(t, api.devices)
}

func TestCleanupRequiresTenant(t *testing.T) {
	api := newFakeNetBoxAPI()
	r := newTestReconciler(api)

	opts := fullOptions()
	opts.Cleanup = true

	_, err := r.Sync(context.Background(), Inventory{}, opts)
	require.Error(t, err)
}

func TestCleanupDeletesObservedDeviceAbsentFromDesired(t *testing.T) {
	api := newFakeNetBoxAPI()
	api.devices["ghost"] = &netbox.Device{ID: 42, Name: "ghost", Status: "active"}
	r := newTestReconciler(api)

	opts := fullOptions()
	opts.Cleanup = true
	opts.Tenant = "acme"

	summary, err := r.Sync(context.Background(), Inventory{}, opts)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counters["device"].Deleted)
	require.Contains(t, api.deletedDeviceIDs, 42)
}
