package normalize

import (
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNXOSFullRangeTrunkIsTaggedAll is the named historic-bug regression:
// an NX-OS row with switchport=enabled, mode=trunk, trunking_vlans="1-4094"
// must normalize to mode=tagged-all with an empty tagged set, not to
// mode=tagged with 4094 entries. Crucially, the row here also carries a
// "switchport" boolean field (as NX-OS output genuinely does) so that a
// field-presence-based dialect guess would misroute it to the QTech
// branch; the dialect tag is what prevents that, not branch ordering.
func TestNXOSFullRangeTrunkIsTaggedAll(t *testing.T) {
	row := parse.Row{
		"dialect":        "nxos_like",
		"name":           "Ethernet1/1",
		"switchport":     true,
		"mode":           "trunk",
		"trunking_vlans": "1-4094",
	}
	res, ok := normalizeSwitchport(row)
	require.True(t, ok)
	assert.Equal(t, model.ModeTaggedAll, res.Mode)
	assert.Empty(t, res.TaggedVLANIDs)
}

func TestQTechTabularRowNotMisroutedAsNXOS(t *testing.T) {
	row := parse.Row{
		"dialect":    "qtech_like",
		"name":       "Gi0/1",
		"switchport": true,
		"MODE":       "trunk",
		"VLAN_LISTS": "10,20,30-35",
	}
	res, ok := normalizeSwitchport(row)
	require.True(t, ok)
	assert.Equal(t, model.ModeTagged, res.Mode)
	assert.Contains(t, res.TaggedVLANIDs, 30)
	assert.Contains(t, res.TaggedVLANIDs, 35)
	assert.NotContains(t, res.TaggedVLANIDs, 4094)
}

func TestIOSAccessMode(t *testing.T) {
	row := parse.Row{"dialect": "ios_like", "name": "Gi0/1", "admin_mode": "static access", "access_vlan": "10"}
	res, ok := normalizeSwitchport(row)
	require.True(t, ok)
	assert.Equal(t, model.ModeAccess, res.Mode)
	require.NotNil(t, res.UntaggedVLAN)
	assert.Equal(t, 10, *res.UntaggedVLAN)
}

func TestUnknownDialectNotNormalized(t *testing.T) {
	_, ok := normalizeSwitchport(parse.Row{"name": "Gi0/1"})
	assert.False(t, ok)
}

func TestVLANListRejectsOutOfRange(t *testing.T) {
	set := parseVLANList("10,4095,0,4094,-3")
	assert.Contains(t, set, 10)
	assert.Contains(t, set, 4094)
	assert.NotContains(t, set, 4095)
	assert.NotContains(t, set, 0)
}
