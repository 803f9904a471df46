package parse

import (
	"fmt"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/platform"
)

// ParserFunc turns raw command output into a slice of Rows. A parser that
// finds nothing returns (nil, nil) — zero rows is not an error (spec.md
// §4.3); only a structurally malformed template is fatal, and that
// surfaces as an error wrapping model.ErrMalformedTemplate.
type ParserFunc func(raw string) ([]Row, error)

// TemplateParser resolves (platform, command) to a ParserFunc following
// the three-step order of spec.md §4.3: custom override, shared family
// template, regex fallback (devices/interfaces only).
type TemplateParser struct {
	registry *platform.Registry

	// custom is keyed by "platformTag|command" (both lowercased via
	// platform.TemplateKey).
	custom map[string]ParserFunc

	// shared is keyed by "family|command".
	shared map[string]ParserFunc
}

// New builds a TemplateParser pre-populated with the shared template
// library for every family the registry knows about.
func New(registry *platform.Registry) *TemplateParser {
	p := &TemplateParser{
		registry: registry,
		custom:   map[string]ParserFunc{},
		shared:   sharedTemplateLibrary(),
	}
	return p
}

// RegisterCustomTemplate installs a project-local override for
// (platformTag, command), taking precedence over any shared template.
func (p *TemplateParser) RegisterCustomTemplate(platformTag, cmd string, fn ParserFunc) {
	tag, c := platform.TemplateKey(platformTag, cmd)
	p.custom[tag+"|"+c] = fn
}

// Parse runs the resolved parser against raw and returns its rows.
func (p *TemplateParser) Parse(raw, platformTag, cmd string) ([]Row, error) {
	tag, c := platform.TemplateKey(platformTag, cmd)

	if fn, ok := p.custom[tag+"|"+c]; ok {
		return runParser(fn, raw)
	}

	family, err := p.registry.TemplateFamily(platformTag)
	if err == nil {
		if fn, ok := p.shared[family+"|"+c]; ok {
			return runParser(fn, raw)
		}
	}

	// Regex fallback only applies to devices/interfaces primary intents;
	// the command string itself is all we have here, so fall back whenever
	// neither custom nor shared resolution found anything AND the command
	// looks like one of those two intents.
	if fn, ok := regexFallback(c); ok {
		return runParser(fn, raw)
	}

	return nil, nil
}

// runParser executes fn and converts a panic (a template author's bug,
// e.g. an invalid regex compiled lazily) into a typed fatal error rather
// than crashing the run, per spec.md §4.3 "malformed template is a fatal
// programmer error".
func runParser(fn ParserFunc, raw string) (rows []Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: parser panicked: %v", model.ErrMalformedTemplate, r)
		}
	}()
	return fn(raw)
}
