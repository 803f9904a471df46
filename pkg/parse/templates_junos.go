package parse

import (
	"regexp"
	"strings"
)

// Juniper Junos templates. Junos output shape differs enough from the
// Cisco-style families (block headers use "Physical interface:", not
// "<name> is up") that it gets its own small parser set, grounded on the
// XML/field-extraction style scottdware-go-junos uses for device facts
// (regexp over text here, since we're parsing CLI text rather than
// NETCONF/XML RPC replies — the core's contract is text-to-Row for every
// platform, per spec.md §4.3).

var reJunosHostname = regexp.MustCompile(`(?i)^Hostname:\s*(\S+)`)
var reJunosModel = regexp.MustCompile(`(?i)^Model:\s*(\S+)`)
var reJunosVersion = regexp.MustCompile(`(?i)^Junos:\s*(\S+)`)

func parseJunosDevices(raw string) ([]Row, error) {
	row := Row{"vendor": "juniper"}
	for _, line := range scanLines(raw) {
		trim := strings.TrimSpace(line)
		if m := reJunosHostname.FindStringSubmatch(trim); m != nil {
			row["hostname"] = m[1]
		}
		if m := reJunosModel.FindStringSubmatch(trim); m != nil {
			row["device_type"] = m[1]
		}
		if m := reJunosVersion.FindStringSubmatch(trim); m != nil {
			row["version"] = m[1]
		}
	}
	if row.GetString("hostname") == "" {
		return nil, nil
	}
	return []Row{row}, nil
}

// "Physical interface: ge-0/0/0, Enabled, Physical link is Up"
// "  Description: uplink-to-core"
// "  Link-level type: Ethernet, MTU: 1514, Speed: 1000mbps"
// "  Current address: aa:bb:cc:dd:ee:ff"
var reJunosIfaceHeader = regexp.MustCompile(`(?i)^Physical interface:\s*(?P<name>\S+),\s*(?P<admin>Enabled|Disabled)`)
var reJunosDescr = regexp.MustCompile(`(?i)^Description:\s*(.+)$`)
var reJunosLinkLevel = regexp.MustCompile(`(?i)MTU:\s*(\d+).*Speed:\s*(\d+)\s*mbps`)
var reJunosAddr = regexp.MustCompile(`(?i)^Current address:\s*([0-9a-f:]{17})`)
var reJunosLocalAddr = regexp.MustCompile(`(?i)Local:\s*([0-9.]+)/(\d+)`)

func parseJunosInterfaces(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil && cur.GetString("name") != "" {
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		trim := strings.TrimSpace(line)
		if m := reJunosIfaceHeader.FindStringSubmatch(trim); m != nil {
			flush()
			cur = Row{
				"name":    m[reJunosIfaceHeader.SubexpIndex("name")],
				"enabled": strings.EqualFold(m[reJunosIfaceHeader.SubexpIndex("admin")], "Enabled"),
			}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reJunosDescr.FindStringSubmatch(trim); m != nil {
			cur["description"] = strings.TrimSpace(m[1])
		}
		if m := reJunosLinkLevel.FindStringSubmatch(trim); m != nil {
			cur["mtu"] = m[1]
			cur["speed_bps"] = m[2] + "000000"
		}
		if m := reJunosAddr.FindStringSubmatch(trim); m != nil {
			cur["mac"] = m[1]
		}
		if m := reJunosLocalAddr.FindStringSubmatch(trim); m != nil {
			cur["ip4"] = m[1]
			cur["ip4_prefix"] = m[2]
		}
	}
	flush()
	return rows, nil
}

// "show ethernet-switching table" rows:
// VLAN    MAC address        Type      Age  Interfaces
// default aa:bb:cc:dd:ee:ff  Learn      -   ge-0/0/1.0
var reJunosMACRow = regexp.MustCompile(`(?i)^\s*(?P<vlan>\S+)\s+(?P<mac>[0-9a-f]{2}(?::[0-9a-f]{2}){5})\s+(?P<type>\S+)\s+\S+\s+(?P<port>\S+)\s*$`)

func parseJunosMAC(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reJunosMACRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := submatchMap(reJunosMACRow, m)
		typ := "dynamic"
		if strings.EqualFold(f["type"], "static") {
			typ = "static"
		}
		rows = append(rows, Row{"vlan": f["vlan"], "mac": f["mac"], "type": typ, "interface": f["port"]})
	}
	return rows, nil
}

// "show lldp neighbors" table:
// Local Interface    Parent Interface  Chassis Id          Port info  System Name
// ge-0/0/0           -                 aa:bb:cc:dd:ee:ff   Ethernet1  sonic
var reJunosLLDPRow = regexp.MustCompile(`(?i)^\s*(?P<local>\S+)\s+\S+\s+(?P<chassis>\S+)\s+(?P<port>\S+)\s+(?P<sysname>.+)$`)

func parseJunosLLDP(raw string) ([]Row, error) {
	var rows []Row
	inTable := false
	for _, line := range scanLines(raw) {
		trim := strings.TrimSpace(line)
		if !inTable {
			if strings.HasPrefix(trim, "Local Interface") {
				inTable = true
			}
			continue
		}
		if trim == "" {
			continue
		}
		m := reJunosLLDPRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := submatchMap(reJunosLLDPRow, m)
		row := Row{
			"local_interface":  f["local"],
			"remote_interface": f["port"],
			"remote_hostname":  strings.TrimSpace(f["sysname"]),
		}
		if mac := findFirstMAC(f["chassis"]); mac != "" {
			row["remote_mac"] = mac
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// "show chassis hardware" blocks, tabular:
// Item             Version  Part number  Serial number     Description
// FPC 0            REV 05   750-123456   ABC12345          24x RJ45
var reJunosInvRow = regexp.MustCompile(`(?i)^(?P<item>[A-Za-z][A-Za-z0-9 /]*?)\s{2,}(?P<version>\S+)\s+(?P<pid>\S+)\s+(?P<serial>\S+)\s+(?P<descr>.+)$`)

func parseJunosInventory(raw string) ([]Row, error) {
	var rows []Row
	inTable := false
	for _, line := range scanLines(raw) {
		if !inTable {
			if strings.HasPrefix(strings.TrimSpace(line), "Item") {
				inTable = true
			}
			continue
		}
		m := reJunosInvRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := submatchMap(reJunosInvRow, m)
		rows = append(rows, Row{"slot": strings.TrimSpace(f["item"]), "part_id": f["pid"], "serial": f["serial"], "description": strings.TrimSpace(f["descr"])})
	}
	return rows, nil
}

// "show lacp interfaces" rows: "ae0      ge-0/0/0  Actor   ..."
var reJunosLAGRow = regexp.MustCompile(`(?i)^\s*(?P<po>ae\d+)\s+(?P<member>\S+)`)

func parseJunosLAG(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reJunosLAGRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := submatchMap(reJunosLAGRow, m)
		rows = append(rows, Row{"member": f["member"], "lag_parent": f["po"]})
	}
	return rows, nil
}

func sharedTemplateLibraryJunos(lib map[string]ParserFunc) {
	const family = "juniper_junos"
	lib[family+"|show version"] = parseJunosDevices
	lib[family+"|show interfaces"] = parseJunosInterfaces
	lib[family+"|show ethernet-switching table"] = parseJunosMAC
	lib[family+"|show lldp neighbors"] = parseJunosLLDP
	lib[family+"|show chassis hardware"] = parseJunosInventory
	lib[family+"|show lacp interfaces"] = parseJunosLAG
}
