package normalize

import (
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACCanonicalizationIdempotent(t *testing.T) {
	for _, raw := range []string{"aabb.ccdd.eeff", "AA:BB:CC:DD:EE:FF", "aa-bb-cc-dd-ee-ff"} {
		once := canonicalizeMAC(raw)
		twice := canonicalizeMAC(once)
		assert.Equal(t, once, twice)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", once)
	}
}

func TestMACCanonicalizationRejectsGarbage(t *testing.T) {
	assert.Equal(t, "", canonicalizeMAC("not-a-mac"))
}

func TestMACDedup(t *testing.T) {
	rows := []parse.Row{
		{"vlan": "10", "mac": "aabb.ccdd.eeff", "type": "dynamic", "interface": "Gi0/1"},
		{"vlan": "10", "mac": "aa:bb:cc:dd:ee:ff", "type": "dynamic", "interface": "Gi0/1"},
		{"vlan": "20", "mac": "aabb.ccdd.eeff", "type": "static", "interface": "Gi0/2"},
	}
	entries := MAC(rows, "sw1")
	require.Len(t, entries, 2)
	assert.Equal(t, model.MACStatic, entries[1].Type)
}

func TestExcludeTrunkPorts(t *testing.T) {
	// Ten MAC rows total, two of them on the trunk port Gi0/48.
	var rows []parse.Row
	for i := 0; i < 8; i++ {
		rows = append(rows, parse.Row{"vlan": "10", "mac": "aabb.ccdd.ee0" + string(rune('0'+i)), "type": "dynamic", "interface": "Gi0/1"})
	}
	rows = append(rows,
		parse.Row{"vlan": "10", "mac": "aabb.ccdd.eeaa", "type": "dynamic", "interface": "Gi0/48"},
		parse.Row{"vlan": "10", "mac": "aabb.ccdd.eebb", "type": "dynamic", "interface": "Gi0/48"},
	)
	entries := MAC(rows, "sw1")
	require.Len(t, entries, 10)

	interfaces := []model.Interface{
		{Device: "sw1", Name: "GigabitEthernet0/1", ShortName: "Gi0/1", Aliases: []string{"GigabitEthernet0/1", "Gi0/1"}, Mode: model.ModeAccess},
		{Device: "sw1", Name: "GigabitEthernet0/48", ShortName: "Gi0/48", Aliases: []string{"GigabitEthernet0/48", "Gi0/48"}, Mode: model.ModeTaggedAll},
	}

	filtered := ExcludeTrunkPorts(entries, interfaces)
	assert.Len(t, filtered, 8)
	for _, e := range filtered {
		assert.NotEqual(t, "Gi0/48", e.Interface)
	}
}

func TestMACRejectsOutOfRangeVLAN(t *testing.T) {
	rows := []parse.Row{
		{"vlan": "0", "mac": "aabb.ccdd.eeff", "type": "dynamic", "interface": "Gi0/1"},
		{"vlan": "4095", "mac": "aabb.ccdd.ee00", "type": "dynamic", "interface": "Gi0/2"},
		{"vlan": "not-a-number", "mac": "aabb.ccdd.ee01", "type": "dynamic", "interface": "Gi0/3"},
		{"mac": "aabb.ccdd.ee02", "type": "dynamic", "interface": "Gi0/4"},
		{"vlan": "10", "mac": "aabb.ccdd.ee03", "type": "dynamic", "interface": "Gi0/5"},
	}
	entries := MAC(rows, "sw1")
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].VLANID)
}
