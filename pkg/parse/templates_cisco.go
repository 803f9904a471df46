package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Shared templates for the "cisco_ios" family (cisco_ios, cisco_iosxe) and,
// with minor command differences, "arista_eos" and "cisco_iosxr". These
// follow the same tolerant, line-scanning style as the teacher's
// net_lldp.go Cisco parsers: find a recognizable header/delimiter, then
// harvest fields row-by-row or block-by-block, skipping anything that
// doesn't match rather than failing outright.

var reIOSHostname = regexp.MustCompile(`(?m)^(?P<host>[A-Za-z0-9_.\-]+)#?\s*$`)
var reIOSVersionLine = regexp.MustCompile(`(?i)Version\s+([0-9][A-Za-z0-9().\-]*)`)
var reIOSUptimeLine = regexp.MustCompile(`(?i)^(?P<host>\S+)\s+uptime is\s+(?P<uptime>.+)$`)

func parseCiscoIOSDevices(raw string) ([]Row, error) {
	host := ""
	version := ""
	for _, line := range scanLines(raw) {
		if m := reIOSUptimeLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			host = m[reIOSUptimeLine.SubexpIndex("host")]
		}
		if m := reIOSVersionLine.FindStringSubmatch(line); m != nil && version == "" {
			version = m[1]
		}
	}
	if host == "" {
		return nil, nil
	}
	return []Row{{"hostname": host, "version": version, "vendor": "cisco"}}, nil
}

// reIOSIfaceHeader matches the first line of an interface block, e.g.
// "GigabitEthernet0/1 is up, line protocol is up (connected)".
var reIOSIfaceHeader = regexp.MustCompile(`^(?P<name>\S+) is (?P<admin>administratively down|up|down),? line protocol is (?P<oper>up|down)`)
var reIOSIfaceDescr = regexp.MustCompile(`^\s*Description:\s*(?P<descr>.+)$`)
var reIOSIfaceMAC = regexp.MustCompile(`(?i)address is\s+([0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4})`)
var reIOSIfaceMTU = regexp.MustCompile(`(?i)MTU\s+(\d+)\s+bytes`)
var reIOSIfaceSpeed = regexp.MustCompile(`(?i)BW\s+(\d+)\s+Kbit`)
var reIOSIfaceIP = regexp.MustCompile(`(?i)Internet address is\s+([0-9.]+)/(\d+)`)
var reIOSIfaceHW = regexp.MustCompile(`(?i)Hardware is\s+([^,]+)`)
var reIOSIfaceMedia = regexp.MustCompile(`(?i)media type is\s+([^\r\n]+)`)

func parseCiscoIOSInterfaces(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil && cur.GetString("name") != "" {
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		if m := reIOSIfaceHeader.FindStringSubmatch(line); m != nil {
			flush()
			cur = Row{
				"name":    m[reIOSIfaceHeader.SubexpIndex("name")],
				"enabled": m[reIOSIfaceHeader.SubexpIndex("admin")] != "administratively down",
			}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reIOSIfaceDescr.FindStringSubmatch(strings.TrimRight(line, " ")); m != nil {
			cur["description"] = strings.TrimSpace(m[reIOSIfaceDescr.SubexpIndex("descr")])
		}
		if m := reIOSIfaceMAC.FindStringSubmatch(line); m != nil {
			cur["mac"] = m[1]
		}
		if m := reIOSIfaceMTU.FindStringSubmatch(line); m != nil {
			cur["mtu"] = m[1]
		}
		if m := reIOSIfaceSpeed.FindStringSubmatch(line); m != nil {
			if kbit, err := strconv.ParseUint(m[1], 10, 64); err == nil {
				cur["speed_bps"] = strconv.FormatUint(kbit*1000, 10)
			}
		}
		if m := reIOSIfaceIP.FindStringSubmatch(line); m != nil {
			cur["ip4"] = m[1]
			cur["ip4_prefix"] = m[2]
		}
		if m := reIOSIfaceHW.FindStringSubmatch(line); m != nil {
			cur["hardware_type"] = strings.TrimSpace(m[1])
		}
		if m := reIOSIfaceMedia.FindStringSubmatch(line); m != nil {
			cur["media_type"] = strings.TrimSpace(m[1])
		}
	}
	flush()
	return rows, nil
}

// reIOSMACRow matches "show mac address-table" rows, e.g.:
//
//	10    aabb.ccdd.eeff    DYNAMIC     Gi0/1
var reIOSMACRow = regexp.MustCompile(`(?i)^\s*(?P<vlan>\d+)\s+(?P<mac>[0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4})\s+(?P<type>dynamic|static|sticky)\s+(?P<port>\S+)\s*$`)

func parseCiscoIOSMAC(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reIOSMACRow.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		fields := submatchMap(reIOSMACRow, m)
		rows = append(rows, Row{
			"vlan":      fields["vlan"],
			"mac":       fields["mac"],
			"type":      strings.ToLower(fields["type"]),
			"interface": fields["port"],
		})
	}
	return rows, nil
}

// LLDP neighbors detail: reuse a compact version of the teacher's block
// scanner (net_lldp.go ParseCiscoIOSXEShowLLDPNeighborsDetail), adapted to
// emit generic Rows instead of a typed LLDPNeighborEntry.
var reLLDPLocalIntf = regexp.MustCompile(`^\s*Local\s+Intf:\s*(\S+)\s*$`)
var reLLDPPortID = regexp.MustCompile(`^\s*Port\s+id:\s*(\S+)\s*$`)
var reLLDPSysName = regexp.MustCompile(`^\s*System\s+Name:\s*(.+?)\s*$`)
var reLLDPPlatform = regexp.MustCompile(`(?i)^\s*Platform:\s*(.+?)\s*$`)
var reLLDPMgmtIP = regexp.MustCompile(`^\s*IP:\s*(\S+)\s*$`)
var reLLDPPortDescr = regexp.MustCompile(`(?i)^\s*Port\s+Description:\s*(.+?)\s*$`)

func parseCiscoLLDPDetail(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil && cur.GetString("local_interface") != "" {
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		if m := reLLDPLocalIntf.FindStringSubmatch(line); m != nil {
			flush()
			cur = Row{"local_interface": m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reLLDPPortID.FindStringSubmatch(line); m != nil {
			cur["remote_interface"] = m[1]
		}
		if m := reLLDPSysName.FindStringSubmatch(line); m != nil {
			cur["remote_hostname"] = m[1]
		}
		if m := reLLDPPlatform.FindStringSubmatch(line); m != nil {
			cur["remote_platform"] = m[1]
		}
		if m := reLLDPPortDescr.FindStringSubmatch(line); m != nil {
			cur["remote_description"] = m[1]
		}
		if m := reLLDPMgmtIP.FindStringSubmatch(line); m != nil {
			cur["remote_ip"] = m[1]
		}
		if mac := findFirstMAC(line); mac != "" && cur.GetString("remote_mac") == "" && cur.GetString("remote_hostname") == "" {
			cur["remote_mac"] = mac
		}
	}
	flush()
	return rows, nil
}

// show inventory: NAME/DESCR/PID/SN blocks.
var reInvName = regexp.MustCompile(`(?i)NAME:\s*"([^"]*)",\s*DESCR:\s*"([^"]*)"`)
var reInvPID = regexp.MustCompile(`(?i)PID:\s*(\S+)\s*,?\s*VID:\s*\S*,?\s*SN:\s*(\S*)`)

func parseCiscoInventory(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil {
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		if m := reInvName.FindStringSubmatch(line); m != nil {
			flush()
			cur = Row{"slot": m[1], "description": m[2]}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reInvPID.FindStringSubmatch(line); m != nil {
			cur["part_id"] = m[1]
			cur["serial"] = m[2]
		}
	}
	flush()
	return rows, nil
}

// show etherchannel summary: membership rows like
// "1      Po1(SU)         LACP      Gi0/1(P) Gi0/2(P)"
var reEtherchannelGroup = regexp.MustCompile(`(?i)^\s*\d+\s+(?P<po>Po\d+)\([A-Za-z]+\)\s+\S+\s+(?P<members>.+)$`)
var reMemberToken = regexp.MustCompile(`(?P<name>\S+?)\([A-Za-z]+\)`)

func parseCiscoLAG(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reEtherchannelGroup.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		po := m[reEtherchannelGroup.SubexpIndex("po")]
		for _, mm := range reMemberToken.FindAllStringSubmatch(m[reEtherchannelGroup.SubexpIndex("members")], -1) {
			rows = append(rows, Row{"member": mm[reMemberToken.SubexpIndex("name")], "lag_parent": po})
		}
	}
	return rows, nil
}

// show interfaces switchport (IOS/EOS dialect): block with
// "Name: Gi0/1" ... "Administrative Mode: trunk" ... "Trunking Native Mode
// VLAN: 1" ... "Trunking VLANs Enabled: 10,20,30".
var reSwpName = regexp.MustCompile(`(?i)^Name:\s*(\S+)`)
var reSwpAdminMode = regexp.MustCompile(`(?i)^Administrative Mode:\s*(.+)$`)
var reSwpAccessVLAN = regexp.MustCompile(`(?i)^Access Mode VLAN:\s*(\d+)`)
var reSwpTrunkVLANs = regexp.MustCompile(`(?i)^Trunking VLANs Enabled:\s*(.+)$`)

func parseIOSSwitchport(raw string) ([]Row, error) {
	var rows []Row
	var cur Row
	flush := func() {
		if cur != nil {
			cur["dialect"] = "ios_like"
			rows = append(rows, cur)
		}
		cur = nil
	}
	for _, line := range scanLines(raw) {
		trim := strings.TrimSpace(line)
		if m := reSwpName.FindStringSubmatch(trim); m != nil {
			flush()
			cur = Row{"name": m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if m := reSwpAdminMode.FindStringSubmatch(trim); m != nil {
			cur["admin_mode"] = strings.ToLower(strings.TrimSpace(m[1]))
		}
		if m := reSwpAccessVLAN.FindStringSubmatch(trim); m != nil {
			cur["access_vlan"] = m[1]
		}
		if m := reSwpTrunkVLANs.FindStringSubmatch(trim); m != nil {
			cur["trunking_vlans"] = strings.TrimSpace(m[1])
		}
	}
	flush()
	return rows, nil
}

func sharedTemplateLibraryCisco(lib map[string]ParserFunc) {
	for _, family := range []string{"cisco_ios", "cisco_iosxr", "arista_eos"} {
		lib[family+"|show version"] = parseCiscoIOSDevices
		lib[family+"|show interfaces"] = parseCiscoIOSInterfaces
		lib[family+"|show interface"] = parseCiscoIOSInterfaces
		lib[family+"|show mac address-table"] = parseCiscoIOSMAC
		lib[family+"|show mac-address-table"] = parseCiscoIOSMAC
		lib[family+"|show lldp neighbors detail"] = parseCiscoLLDPDetail
		lib[family+"|show inventory"] = parseCiscoInventory
		lib[family+"|show etherchannel summary"] = parseCiscoLAG
		lib[family+"|show port-channel summary"] = parseCiscoLAG
		lib[family+"|show interfaces switchport"] = parseIOSSwitchport
	}
}
