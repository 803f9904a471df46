package normalize

import (
	"strconv"
	"strings"
)

// minVLAN/maxVLAN bound the valid VLAN ID range (spec.md §8: "Normalization
// rejects any VLAN id outside [1, 4094]").
const (
	minVLAN = 1
	maxVLAN = 4094
)

// parseVLANList accepts a comma-separated list of VLAN ids and/or hyphen
// ranges (e.g. "10,20,30-35") and returns the expanded set, silently
// dropping any id outside [1, 4094] rather than failing the whole list —
// one malformed token should not blank out the rest of an otherwise good
// trunk.
func parseVLANList(raw string) map[int]struct{} {
	out := map[int]struct{}{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := splitRange(part); ok {
			for v := lo; v <= hi; v++ {
				addVLAN(out, v)
			}
			continue
		}
		if v, err := strconv.Atoi(part); err == nil {
			addVLAN(out, v)
		}
	}
	return out
}

func splitRange(part string) (lo, hi int, ok bool) {
	i := strings.IndexByte(part, '-')
	if i <= 0 || i == len(part)-1 {
		return 0, 0, false
	}
	loS, hiS := part[:i], part[i+1:]
	loV, err1 := strconv.Atoi(strings.TrimSpace(loS))
	hiV, err2 := strconv.Atoi(strings.TrimSpace(hiS))
	if err1 != nil || err2 != nil || loV > hiV {
		return 0, 0, false
	}
	return loV, hiV, true
}

func addVLAN(set map[int]struct{}, v int) {
	if v < minVLAN || v > maxVLAN {
		return
	}
	set[v] = struct{}{}
}

// isAllVLANsToken reports whether raw is the literal "ALL" token (case
// insensitive, possibly surrounded by whitespace) used by several
// platforms' trunk-vlan fields to mean "every VLAN". The NX-OS "1-4094"
// full range is checked separately by isFullVLANRange.
func isAllVLANsToken(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "ALL")
}

// isFullVLANRange reports whether raw (trimmed) is exactly the "1-4094"
// full-range string, which spec.md §8's NX-OS regression case requires
// normalizeSwitchport to fold into tagged-all rather than a literal
// 4094-entry tagged set.
func isFullVLANRange(raw string) bool {
	return strings.TrimSpace(raw) == "1-4094"
}
