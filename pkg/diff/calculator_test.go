package diff

import (
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	untagged := 10
	return Snapshot{
		Devices: []model.Device{
			{Host: "10.0.0.1", Name: "sw1", Platform: "cisco_ios", Site: "DC1", Role: "access", DeviceType: "C9300"},
		},
		Interfaces: []model.Interface{
			{
				Name: "GigabitEthernet0/1", Device: "sw1", Enabled: true, Description: "uplink",
				PortType: model.PortTypeAccessCopper, Mode: model.ModeAccess, UntaggedVLANID: &untagged,
			},
		},
		IPs: []model.IPAddress{
			{Device: "sw1", Interface: "GigabitEthernet0/1", Address: "10.0.0.1/24", Primary: true},
		},
		VLANs: []model.VLAN{
			{VID: 10, Name: "VLAN10", Site: "DC1", Status: "active"},
		},
		Cables: []model.Cable{
			{EndpointA: model.CableEndpoint{Device: "sw1", Interface: "Gi0/1"}, EndpointB: model.CableEndpoint{Device: "sw2", Interface: "Gi0/2"}},
		},
		Inventory: []model.InventoryItem{
			{Device: "sw1", Slot: "Slot0", Serial: "ABC123", PartID: "C9300-SUP"},
		},
	}
}

func assertEmptyPlan(t *testing.T, p model.DiffPlan) {
	t.Helper()
	assert.Empty(t, p.Devices.ToCreate)
	assert.Empty(t, p.Devices.ToUpdate)
	assert.Empty(t, p.Devices.ToDelete)
	assert.Empty(t, p.Interfaces.ToCreate)
	assert.Empty(t, p.Interfaces.ToUpdate)
	assert.Empty(t, p.Interfaces.ToDelete)
	assert.Empty(t, p.IPs.ToCreate)
	assert.Empty(t, p.IPs.ToUpdate)
	assert.Empty(t, p.IPs.ToDelete)
	assert.Empty(t, p.VLANs.ToCreate)
	assert.Empty(t, p.VLANs.ToUpdate)
	assert.Empty(t, p.VLANs.ToDelete)
	assert.Empty(t, p.Cables.ToCreate)
	assert.Empty(t, p.Cables.ToUpdate)
	assert.Empty(t, p.Cables.ToDelete)
	assert.Empty(t, p.Inventory.ToCreate)
	assert.Empty(t, p.Inventory.ToUpdate)
	assert.Empty(t, p.Inventory.ToDelete)
}

// TestDiffIsReflexive covers spec.md §8: diff(X,X) must be empty across
// every entity kind.
func TestDiffIsReflexive(t *testing.T) {
	snap := sampleSnapshot()
	plan := Plan(snap, snap)
	assertEmptyPlan(t, plan)
}

// TestApplyThenDiffIsEmpty covers spec.md §8: once observed has been
// brought in line with desired (the "apply" step, simulated here by
// copying desired into observed), re-diffing produces no further work.
func TestApplyThenDiffIsEmpty(t *testing.T) {
	desired := sampleSnapshot()
	observed := sampleSnapshot()
	plan := Plan(desired, observed)
	assertEmptyPlan(t, plan)

	observed.Devices[0].Site = "OLD_SITE"
	plan = Plan(desired, observed)
	require.Len(t, plan.Devices.ToUpdate, 1)

	observed.Devices[0].Site = desired.Devices[0].Site
	plan = Plan(desired, observed)
	assertEmptyPlan(t, plan)
}

func TestDevicesToCreateAndToDelete(t *testing.T) {
	desired := []model.Device{{Host: "10.0.0.2", Name: "sw-new"}}
	observed := []model.Device{{Host: "10.0.0.3", Name: "sw-gone"}}
	p := Devices(desired, observed)
	require.Len(t, p.ToCreate, 1)
	require.Len(t, p.ToDelete, 1)
	assert.Empty(t, p.ToUpdate)
}

func TestInterfacesDetectsVLANChange(t *testing.T) {
	oldVLAN, newVLAN := 10, 20
	desired := []model.Interface{{Device: "sw1", Name: "Gi0/1", UntaggedVLANID: &newVLAN}}
	observed := []model.Interface{{Device: "sw1", Name: "Gi0/1", UntaggedVLANID: &oldVLAN}}
	p := Interfaces(desired, observed)
	require.Len(t, p.ToUpdate, 1)
	assert.Equal(t, "vlans", p.ToUpdate[0].Changes[0].Field)
}

func TestIPsKeyedByDeviceInterfaceAddress(t *testing.T) {
	desired := []model.IPAddress{{Device: "sw1", Interface: "Gi0/1", Address: "10.0.0.1/24", Primary: true}}
	observed := []model.IPAddress{{Device: "sw1", Interface: "Gi0/1", Address: "10.0.0.1/24", Primary: false}}
	p := IPs(desired, observed)
	require.Len(t, p.ToUpdate, 1)
	assert.Equal(t, "primary", p.ToUpdate[0].Changes[0].Field)
}

func TestCablesOrderIndependentKey(t *testing.T) {
	a := model.Cable{EndpointA: model.CableEndpoint{Device: "sw1", Interface: "Gi0/1"}, EndpointB: model.CableEndpoint{Device: "sw2", Interface: "Gi0/2"}}
	b := model.Cable{EndpointA: model.CableEndpoint{Device: "sw2", Interface: "Gi0/2"}, EndpointB: model.CableEndpoint{Device: "sw1", Interface: "Gi0/1"}}
	p := Cables([]model.Cable{a}, []model.Cable{b})
	assertEmptyPlan(t, model.DiffPlan{Cables: p})
}

func TestVLANsKeyedByVIDAndSite(t *testing.T) {
	desired := []model.VLAN{{VID: 10, Site: "DC1", Name: "VLAN10"}, {VID: 10, Site: "DC2", Name: "VLAN10-dc2"}}
	observed := []model.VLAN{{VID: 10, Site: "DC1", Name: "VLAN10"}}
	p := VLANs(desired, observed)
	require.Len(t, p.ToCreate, 1)
	assert.Equal(t, "DC2", p.ToCreate[0].(model.VLAN).Site)
}
