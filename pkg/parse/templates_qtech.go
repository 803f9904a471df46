package parse

import (
	"regexp"
	"strings"
)

// QTech's "show interfaces status" reports switchport mode as a tabular
// row rather than a per-interface block, with field names that collide
// with NX-OS's if field presence alone were used for dialect detection —
// this is exactly why spec.md §4.4/§9 requires a dialect tag computed at
// parse time rather than a later "duck-typed" guess: we already know,
// here, which family template produced the row.
//
// Example (abridged):
//
//	Port      Name      Status  VLAN  Duplex  Speed  switchport  MODE     VLAN_LISTS
//	Gi0/1     uplink     up      10    full    1000   enabled     access   10
//	Ag10      --         up      trunk full    1000   enabled     trunk    1-100,200
var reQTechStatusRow = regexp.MustCompile(`(?i)^\s*(?P<port>\S+)\s+\S+\s+(?P<status>up|down)\s+\S+\s+\S+\s+\S+\s+(?P<switchport>enabled|disabled)\s+(?P<mode>access|trunk)\s+(?P<vlans>\S+)\s*$`)

func parseQTechSwitchport(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reQTechStatusRow.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		f := submatchMap(reQTechStatusRow, m)
		rows = append(rows, Row{
			"dialect":    "qtech_like",
			"name":       f["port"],
			"switchport": strings.EqualFold(f["switchport"], "enabled"),
			"MODE":       strings.ToLower(f["mode"]),
			"VLAN_LISTS": f["vlans"],
		})
	}
	return rows, nil
}

// "show lacp summary" rows, e.g.: "Ag10  LACP  Gi0/1(P) Gi0/2(P)"
var reQTechLAGGroup = regexp.MustCompile(`(?i)^\s*(?P<po>Ag\d+)\s+\S+\s+(?P<members>.+)$`)

func parseQTechLAG(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reQTechLAGGroup.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		po := m[reQTechLAGGroup.SubexpIndex("po")]
		for _, mm := range reMemberToken.FindAllStringSubmatch(m[reQTechLAGGroup.SubexpIndex("members")], -1) {
			rows = append(rows, Row{"member": mm[reMemberToken.SubexpIndex("name")], "lag_parent": po})
		}
	}
	return rows, nil
}

func sharedTemplateLibraryQTech(lib map[string]ParserFunc) {
	const family = "qtech"
	lib[family+"|show version"] = parseCiscoIOSDevices
	lib[family+"|show interfaces"] = parseCiscoIOSInterfaces
	lib[family+"|show mac-address-table"] = parseCiscoIOSMAC
	lib[family+"|show lldp neighbors detail"] = parseCiscoLLDPDetail
	lib[family+"|show inventory"] = parseCiscoInventory
	lib[family+"|show lacp summary"] = parseQTechLAG
	lib[family+"|show interfaces status"] = parseQTechSwitchport
}
