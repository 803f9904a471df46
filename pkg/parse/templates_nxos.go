package parse

import (
	"regexp"
	"strings"
)

// NX-OS-specific shared templates. NX-OS's "show interface switchport"
// uses a distinct block shape ("Operational Mode: trunk", "Trunking VLANs
// Allowed: 1-4094") from the IOS/EOS dialect. Field presence alone cannot
// tell the two apart, and the normalizer dispatches on the dialect tag
// only; at the parse stage we already know we're running the NX-OS family
// template, so we tag dialect="nxos_like" directly here. The historic
// "switchport ordering" bug (spec.md §8) concerned a normalizer that
// guessed the dialect from field shape; the field names emitted here
// (mode/trunking_vlans) are the ones the normalizer's NX-OS branch reads.

var reNXOSSwpName = regexp.MustCompile(`(?i)^Name:\s*(\S+)`)
var reNXOSSwpEnabled = regexp.MustCompile(`(?i)^Switchport:\s*(Enabled|Disabled)`)
var reNXOSSwpMode = regexp.MustCompile(`(?i)^Operational Mode:\s*(.+)$`)
var reNXOSSwpAccessVLAN = regexp.MustCompile(`(?i)^Access Mode VLAN:\s*(\d+)`)
var reNXOSSwpTrunkVLANs = regexp.MustCompile(`(?i)^Trunking VLANs Allowed:\s*(.+)$`)

func parseNXOSSwitchport(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil {
			cur["dialect"] = "nxos_like"
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		trim := strings.TrimSpace(line)
		if m := reNXOSSwpName.FindStringSubmatch(trim); m != nil {
			flush()
			cur = Row{"name": m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reNXOSSwpEnabled.FindStringSubmatch(trim); m != nil {
			cur["switchport"] = strings.ToLower(m[1]) == "enabled"
		}
		if m := reNXOSSwpMode.FindStringSubmatch(trim); m != nil {
			cur["mode"] = strings.ToLower(strings.TrimSpace(m[1]))
		}
		if m := reNXOSSwpAccessVLAN.FindStringSubmatch(trim); m != nil {
			cur["access_vlan"] = m[1]
		}
		if m := reNXOSSwpTrunkVLANs.FindStringSubmatch(trim); m != nil {
			cur["trunking_vlans"] = strings.TrimSpace(m[1])
		}
	}
	flush()
	return rows, nil
}

// "show port-channel summary" rows, e.g.:
// 1      Po1(SU)     Eth      LACP      Eth1/1(P) Eth1/2(P)
var reNXOSPOGroup = regexp.MustCompile(`(?i)^\s*\d+\s+(?P<po>Po\d+)\([A-Za-z]+\)\s+\S+\s+\S+\s+(?P<members>.+)$`)

func parseNXOSLAG(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reNXOSPOGroup.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		po := m[reNXOSPOGroup.SubexpIndex("po")]
		for _, mm := range reMemberToken.FindAllStringSubmatch(m[reNXOSPOGroup.SubexpIndex("members")], -1) {
			rows = append(rows, Row{"member": mm[reMemberToken.SubexpIndex("name")], "lag_parent": po})
		}
	}
	return rows, nil
}

func sharedTemplateLibraryNXOS(lib map[string]ParserFunc) {
	const family = "cisco_nxos"
	lib[family+"|show version"] = parseCiscoIOSDevices
	lib[family+"|show interface"] = parseCiscoIOSInterfaces
	lib[family+"|show interfaces"] = parseCiscoIOSInterfaces
	lib[family+"|show mac address-table"] = parseCiscoIOSMAC
	lib[family+"|show lldp neighbors detail"] = parseCiscoLLDPDetail
	lib[family+"|show inventory"] = parseCiscoInventory
	lib[family+"|show port-channel summary"] = parseNXOSLAG
	lib[family+"|show interface switchport"] = parseNXOSSwitchport
}
