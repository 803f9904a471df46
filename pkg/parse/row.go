// Package parse implements the two-stage TemplateParser described in
// spec.md §4.3: a custom-template override, falling back to a shared
// template family, falling back to a conservative regex parser for the
// devices/interfaces primary intents.
//
// No TextFSM-equivalent templating library exists anywhere in the example
// pack (see DESIGN.md); the small regex/line-scan template engine here is
// built on stdlib regexp/bufio, following the same tolerant line-scanning
// style the teacher's net_lldp.go parsers use.
package parse

// Row is the opaque, string-keyed dictionary a template produces per
// matched record. Per spec.md §9, Row must not propagate past the
// normalizer boundary: normalizers read well-known keys and convert them
// into a typed canonical record immediately.
type Row map[string]any

// GetString returns row[key] as a string, or "" if absent/not a string.
func (r Row) GetString(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetStrings returns row[key] as a []string, or nil if absent/wrong type.
func (r Row) GetStrings(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	s, _ := v.([]string)
	return s
}
