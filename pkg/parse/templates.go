package parse

import "regexp"

// sharedTemplateLibrary merges every vendor family's built-in templates
// into one lookup keyed "family|command". Per-family files register
// themselves here rather than each owning a piece of a shared global map,
// so a new family is a self-contained addition (one file, one register
// call) instead of a scattered edit across the package.
func sharedTemplateLibrary() map[string]ParserFunc {
	lib := map[string]ParserFunc{}
	sharedTemplateLibraryCisco(lib)
	sharedTemplateLibraryNXOS(lib)
	sharedTemplateLibraryQTech(lib)
	sharedTemplateLibraryJunos(lib)
	return lib
}

// regexFallback implements spec.md §4.3's last-resort path: it applies
// only to the devices and interfaces primary intents, and only when
// neither a custom override nor a shared family template resolved the
// (platform, command) pair. It is deliberately shallow — it extracts
// whatever a generic Cisco-ish/Junos-ish text blob will yield and nothing
// more; anything requiring per-vendor field layout belongs in a real
// family template instead.
func regexFallback(cmd string) (ParserFunc, bool) {
	switch {
	case reFallbackDevicesCmd.MatchString(cmd):
		return regexFallbackDevices, true
	case reFallbackInterfacesCmd.MatchString(cmd):
		return regexFallbackInterfaces, true
	default:
		return nil, false
	}
}

var reFallbackDevicesCmd = regexp.MustCompile(`(?i)show version`)
var reFallbackInterfacesCmd = regexp.MustCompile(`(?i)show interfaces?(\s|$)`)

var reFallbackHostname = regexp.MustCompile(`(?im)^(?:hostname|Hostname):?\s*(\S+)`)
var reFallbackVersion = regexp.MustCompile(`(?i)version\s+([0-9][\w.()-]*)`)

// regexFallbackDevices produces at least a hostname when it can find one,
// per spec.md §4.3's "at least hostname/version" guarantee; it never
// errors, since the worst case is an empty row set.
func regexFallbackDevices(raw string) ([]Row, error) {
	row := Row{}
	if m := reFallbackHostname.FindStringSubmatch(raw); m != nil {
		row["hostname"] = m[1]
	}
	if m := reFallbackVersion.FindStringSubmatch(raw); m != nil {
		row["version"] = m[1]
	}
	if row.GetString("hostname") == "" && row.GetString("version") == "" {
		return nil, nil
	}
	return []Row{row}, nil
}

var reFallbackIfaceLine = regexp.MustCompile(`(?im)^(?P<name>\S+)\s+is\s+(?P<status>up|down|administratively down)`)

// regexFallbackInterfaces produces at least interface name/status pairs
// for the common "<name> is <status>" line shape shared by IOS, IOS-XE,
// IOS-XR and EOS; it won't recover switchport/LAG/media detail, only
// presence and admin/line status.
func regexFallbackInterfaces(raw string) ([]Row, error) {
	var rows []Row
	for _, line := range scanLines(raw) {
		m := reFallbackIfaceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		f := submatchMap(reFallbackIfaceLine, m)
		rows = append(rows, Row{"name": f["name"], "status": f["status"]})
	}
	return rows, nil
}
