package parse

import (
	"testing"

	"github.com/netfleet/netinv/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomOverrideTakesPrecedenceOverShared(t *testing.T) {
	p := New(platform.New())
	p.RegisterCustomTemplate("cisco_ios", "show version", func(raw string) ([]Row, error) {
		return []Row{{"hostname": "custom-wins"}}, nil
	})
	rows, err := p.Parse("Cisco IOS Software\nrouter1 uptime is 3 days\nVersion 15.2(4)M1\n", "cisco_ios", "show version")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "custom-wins", rows[0].GetString("hostname"))
}

func TestSharedTemplateResolvesByFamily(t *testing.T) {
	p := New(platform.New())
	raw := "router1 uptime is 3 days, 2 hours\nCisco IOS Software, Version 15.2(4)M1, RELEASE SOFTWARE\n"
	rows, err := p.Parse(raw, "cisco_iosxe", "show version")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "router1", rows[0].GetString("hostname"))
}

func TestRegexFallbackAppliesOnlyToDevicesAndInterfaces(t *testing.T) {
	p := New(platform.New())

	// Unknown platform falls straight through custom/shared to the fallback.
	rows, err := p.Parse("GigabitEthernet0/1 is up, line protocol is up\n", "unknown_platform_tag", "show interfaces")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "GigabitEthernet0/1", rows[0].GetString("name"))

	// A command outside devices/interfaces gets no fallback at all.
	rows, err = p.Parse("some text", "unknown_platform_tag", "show mac address-table")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestNXOSSwitchportDialectTagging(t *testing.T) {
	raw := "Name: Eth1/1\n" +
		"Switchport: Enabled\n" +
		"Operational Mode: trunk\n" +
		"Trunking VLANs Allowed: 1-4094\n"
	rows, err := parseNXOSSwitchport(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "nxos_like", rows[0].GetString("dialect"))
	assert.Equal(t, "1-4094", rows[0].GetString("trunking_vlans"))
}

func TestQTechSwitchportDialectTagging(t *testing.T) {
	raw := "Gi0/1     uplink     up      10    full    1000   enabled     access   10\n"
	rows, err := parseQTechSwitchport(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "qtech_like", rows[0].GetString("dialect"))
	assert.Equal(t, "access", rows[0].GetString("MODE"))
}

func TestSharedTemplateLibraryCoversEveryRegisteredFamily(t *testing.T) {
	lib := sharedTemplateLibrary()
	reg := platform.New()
	for _, tag := range []string{"cisco_ios", "cisco_iosxe", "cisco_iosxr", "cisco_nxos", "arista_eos", "qtech", "juniper_junos"} {
		family, err := reg.TemplateFamily(tag)
		require.NoErrorf(t, err, "platform %s must resolve a template family", tag)
		_, ok := lib[family+"|show version"]
		assert.Truef(t, ok, "family %s missing a show version template", family)
	}
}

func TestMalformedCustomTemplatePanicBecomesTypedError(t *testing.T) {
	p := New(platform.New())
	p.RegisterCustomTemplate("cisco_ios", "show version", func(raw string) ([]Row, error) {
		panic("boom")
	})
	_, err := p.Parse("anything", "cisco_ios", "show version")
	require.Error(t, err)
}
