package parse

import (
	"bufio"
	"regexp"
	"strings"
)

// scanLines is a small helper shared by every line-oriented template,
// mirroring the teacher's bufio.Scanner-based parse loops.
func scanLines(raw string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

var reHexMAC = regexp.MustCompile(`(?i)\b[0-9a-f]{4}\.[0-9a-f]{4}\.[0-9a-f]{4}\b`)
var reColonMAC = regexp.MustCompile(`(?i)\b[0-9a-f]{2}(?::[0-9a-f]{2}){5}\b`)
var reDashMAC = regexp.MustCompile(`(?i)\b[0-9a-f]{2}(?:-[0-9a-f]{2}){5}\b`)

// findFirstMAC scans text for any recognized MAC notation (Cisco dotted,
// colon, or dash) and returns the raw matched token, or "" if none.
func findFirstMAC(text string) string {
	if m := reHexMAC.FindString(text); m != "" {
		return m
	}
	if m := reColonMAC.FindString(text); m != "" {
		return m
	}
	if m := reDashMAC.FindString(text); m != "" {
		return m
	}
	return ""
}

// submatchMap extracts named capture groups from a regexp match into a
// plain map, skipping the unnamed/empty-name group 0.
func submatchMap(re *regexp.Regexp, m []string) map[string]string {
	out := map[string]string{}
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		out[name] = strings.TrimSpace(m[i])
	}
	return out
}
