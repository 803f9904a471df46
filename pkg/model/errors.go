package model

import "errors"

// Sentinel errors implementing the taxonomy of spec.md §7. Callers use
// errors.Is/errors.As against these rather than matching strings.
var (
	// ErrUnknownPlatform: configuration error, fatal to the run that
	// references the offending device.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrMalformedTemplate: configuration error, fatal to the run.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrAuthenticationFailed: device or NetBox auth failure. Never
	// retried. Device-auth is per-device fatal; NetBox-auth is run-fatal.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrConnectionRefused, ErrTimedOut, ErrUnreachableHost, ErrDriver are
	// transient transport errors, retried with backoff up to a bounded
	// count.
	ErrConnectionRefused = errors.New("connection refused")
	ErrTimedOut          = errors.New("timed out")
	ErrUnreachableHost   = errors.New("unreachable host")
	ErrDriver            = errors.New("driver error")

	// ErrCommandTimedOut is raised by ConnectionManager.Run.
	ErrCommandTimedOut = errors.New("command timed out")

	// ErrNoRows: a template produced zero rows where the primary intent
	// required at least one. Degraded result, not fatal; device is marked
	// partial.
	ErrNoRows = errors.New("parser produced no rows")

	// ErrCancelled: the run's cancellation signal fired. Reported as its
	// own category, not counted as failure.
	ErrCancelled = errors.New("cancelled")
)

// ErrorCategory classifies an error for retry/propagation decisions,
// replacing "exceptions for control flow" per spec.md §9: a retry helper
// inspects a category value, it does not catch arbitrary error types.
type ErrorCategory string

const (
	CategoryConfiguration  ErrorCategory = "configuration"
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryTransient      ErrorCategory = "transient"
	CategoryParse          ErrorCategory = "parse"
	CategorySemantic       ErrorCategory = "semantic"
	CategoryCancellation   ErrorCategory = "cancellation"
	CategoryInternal       ErrorCategory = "internal"
)

// Classify maps a sentinel (or wrapped sentinel) error to its category.
// Unrecognized errors are treated as internal.
func Classify(err error) ErrorCategory {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCancelled):
		return CategoryCancellation
	case errors.Is(err, ErrUnknownPlatform), errors.Is(err, ErrMalformedTemplate):
		return CategoryConfiguration
	case errors.Is(err, ErrAuthenticationFailed):
		return CategoryAuthentication
	case errors.Is(err, ErrConnectionRefused), errors.Is(err, ErrTimedOut),
		errors.Is(err, ErrUnreachableHost), errors.Is(err, ErrDriver),
		errors.Is(err, ErrCommandTimedOut):
		return CategoryTransient
	case errors.Is(err, ErrNoRows):
		return CategoryParse
	default:
		return CategoryInternal
	}
}

// Retryable reports whether a retry helper should attempt the operation
// again. AuthenticationFailure is explicitly never retried per spec.md §4.5.
func Retryable(err error) bool {
	return Classify(err) == CategoryTransient
}
