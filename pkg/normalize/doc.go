// Package normalize turns pkg/parse.Row values into the canonical records
// of pkg/model, per spec.md §4.4. Every normalizer here owns the boundary:
// once a Row crosses into a normalizer, it is converted to a typed record
// before returning, and the opaque map form never leaks back out.
package normalize
