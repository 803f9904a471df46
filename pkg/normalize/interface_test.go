package normalize

import (
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfacesBasicFields(t *testing.T) {
	rows := []parse.Row{
		{"name": "GigabitEthernet0/1", "enabled": true, "description": "uplink", "mac": "aabb.ccdd.eeff", "mtu": "1500"},
	}
	ifaces := Interfaces(rows, "sw1")
	require.Len(t, ifaces, 1)
	assert.Equal(t, "GigabitEthernet0/1", ifaces[0].Name)
	assert.Equal(t, "Gi0/1", ifaces[0].ShortName)
	assert.True(t, ifaces[0].Enabled)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", ifaces[0].MAC)
	assert.Equal(t, model.PortTypeUnknown, ifaces[0].PortType)
}

// TestAliasLookupAcrossSources covers spec.md §8's named scenario: LAG
// membership reported as "Hu0/55" must match an interface whose canonical
// name is "HundredGigabitEthernet 0/55" (interior-space QTech form).
func TestAliasLookupAcrossSources(t *testing.T) {
	rows := []parse.Row{{"name": "HundredGigabitEthernet 0/55", "enabled": true}}
	ifaces := Interfaces(rows, "sw1")
	require.Len(t, ifaces, 1)

	membership := []parse.Row{{"member": "Hu0/55", "lag_parent": "Port-channel1"}}
	ifaces = EnrichWithLAG(ifaces, membership)
	assert.Equal(t, "Port-channel1", ifaces[0].LAGParent)
}

// TestCaseInsensitiveLAGPrefixResolution covers spec.md §8: LAG name
// resolution must succeed regardless of which recognized prefix spelling
// (port-channel/po/aggregateport/ag) names the parent.
func TestCaseInsensitiveLAGPrefixResolution(t *testing.T) {
	for _, parent := range []string{"Port-channel1", "po1", "AggregatePort1", "AG1"} {
		rows := []parse.Row{{"name": "GigabitEthernet0/1", "enabled": true}}
		ifaces := Interfaces(rows, "sw1")
		membership := []parse.Row{{"member": "Gi0/1", "lag_parent": parent}}
		ifaces = EnrichWithLAG(ifaces, membership)
		assert.NotEmpty(t, ifaces[0].LAGParent, "parent spelling %q should resolve", parent)
	}
}

func TestEnrichWithSwitchportAppliesDialectTaggedResult(t *testing.T) {
	rows := []parse.Row{{"name": "Ethernet1/1", "enabled": true}}
	ifaces := Interfaces(rows, "sw1")
	sw := []parse.Row{{"dialect": "nxos_like", "name": "Eth1/1", "mode": "trunk", "trunking_vlans": "1-4094"}}
	ifaces = EnrichWithSwitchport(ifaces, sw)
	assert.Equal(t, model.ModeTaggedAll, ifaces[0].Mode)
}
