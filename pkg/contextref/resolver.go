package contextref

import (
	"context"
	"errors"
	"fmt"
)

// Resolution is the outcome of resolving one context path. Exactly one of
// Content or Err is meaningful: Err is nil on success.
type Resolution struct {
	// Path is the plp:// reference that was resolved.
	Path string

	// Content is the resolved content on success.
	Content string

	// Err is the typed failure (NotFoundError, InvalidPathError, or a transport
	// error) when resolution failed.
	Err error
}

// BatchResult maps each requested path to its resolution outcome. Every
// requested path has an entry.
type BatchResult map[string]Resolution

// Resolver resolves context-reference paths to externally-stored content.
//
// ResolveBatch must be semantically equivalent to calling Resolve on each path
// independently — no cross-path side effects — differing only in round-trip
// cost. Implementations validate paths locally before touching the network or
// storage: a syntactically invalid path yields an immediate InvalidPathError
// and never a remote request.
type Resolver interface {
	// Resolve performs a single lookup.
	Resolve(ctx context.Context, path string) (Resolution, error)

	// ResolveBatch resolves many paths in one round trip.
	ResolveBatch(ctx context.Context, paths []string) (BatchResult, error)
}

// NotFoundError indicates a syntactically valid path with no stored content.
type NotFoundError struct {
	// Path is the reference that was not found.
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("context path %q not found", e.Path)
}

// InvalidPathError indicates a path that failed syntactic validation. It is
// always produced locally, before any network call.
type InvalidPathError struct {
	// Path is the malformed reference.
	Path string

	// Reason describes what is invalid about the path.
	Reason string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid context path %q: %s", e.Path, e.Reason)
}

// ResolveError wraps a transport or storage failure for a single path.
type ResolveError struct {
	// Path is the reference whose resolution failed.
	Path string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("failed to resolve context path %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the resolution failed because the path has no
// stored content (as opposed to a malformed path or a transport failure).
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidPath reports whether the resolution failed local path validation.
func IsInvalidPath(err error) bool {
	var ip *InvalidPathError
	return errors.As(err, &ip)
}
