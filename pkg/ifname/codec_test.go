package ifname

import (
	"testing"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_GigabitEthernet(t *testing.T) {
	long, short, aliases := Canonicalize("Gi0/1")
	assert.Equal(t, "GigabitEthernet0/1", long)
	assert.Equal(t, "Gi0/1", short)
	assert.Contains(t, aliases, "GigabitEthernet0/1")
	assert.Contains(t, aliases, "Gi0/1")
}

func TestCanonicalize_HundredGigAlternates(t *testing.T) {
	long, _, aliases := Canonicalize("Hu0/55")
	assert.Equal(t, "HundredGigabitEthernet0/55", long)
	assert.Contains(t, aliases, "Hu0/55")
	assert.Contains(t, aliases, "HundredGigE0/55")
	assert.Contains(t, aliases, "HundredGigabitEthernet0/55")
}

func TestCanonicalize_QTechInteriorSpaceNormalized(t *testing.T) {
	long, _, _ := Canonicalize("TFGigabitEthernet 0/55")
	assert.Equal(t, "TFGigabitEthernet0/55", long, "interior space must be stripped from the canonical form")
}

func TestCanonicalize_LAGAlternates(t *testing.T) {
	long, short, aliases := Canonicalize("Ag10")
	assert.Equal(t, "Port-channel10", long)
	assert.Equal(t, "Po10", short)
	assert.Contains(t, aliases, "Ag10")
}

// Every alias in aliases(I.name) must resolve back to I via an
// alias-indexed lookup map (spec.md §8 quantified invariant).
func TestAliasLookupInvariant(t *testing.T) {
	iface := model.Interface{Name: "HundredGigabitEthernet 0/55"}
	_, _, aliases := Canonicalize(iface.Name)
	iface.Aliases = aliases

	for _, a := range aliases {
		ok := iface.HasAlias(a)
		require.True(t, ok, "alias %q must resolve back to the canonical interface", a)
	}

	assert.True(t, iface.HasAlias("Hu0/55"))
}

func TestMatchByAlias(t *testing.T) {
	candidates := []model.Interface{
		{Name: "Port-channel10", Aliases: AliasSet("Port-channel10")},
		{Name: "GigabitEthernet0/1", Aliases: AliasSet("GigabitEthernet0/1")},
	}
	idx, ok := MatchByAlias(candidates, "Ag10")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestClassifyPortType(t *testing.T) {
	assert.Equal(t, model.PortTypeLAG, ClassifyPortType("Port-channel1"))
	assert.Equal(t, model.PortTypeLAG, ClassifyPortType("Ag10"))
	assert.Equal(t, model.PortTypeVirtual, ClassifyPortType("Vlan10"))
	assert.Equal(t, model.PortTypeLoopback, ClassifyPortType("Loopback0"))
	assert.Equal(t, model.PortTypeSFPPlus, ClassifyPortType("TF0/55"))
	assert.Equal(t, model.PortTypeUnknown, ClassifyPortType("GigabitEthernet0/1"))
}

func TestCaseInsensitiveLAGPrefixes(t *testing.T) {
	for _, raw := range []string{"port-channel10", "po10", "aggregateport10", "ag10", "Ag10", "PO10"} {
		long, _, _ := Canonicalize(raw)
		assert.Equal(t, "Port-channel10", long, "prefix %q must resolve case-insensitively", raw)
	}
}
