package contextref

// Resolved is the outcome of the batched pre-resolution phase, keyed by path.
// Evaluation consults it instead of the network: a path present with no error
// is resolved content, a NotFoundError means the presence predicate is false,
// and any other error is surfaced only if the path is actually needed by a
// selected branch.
type Resolved map[string]Resolution

// Lookup returns the resolution for a path, or a NotFoundError resolution if
// the batch never covered it. An uncovered path indicates the pre-scan and the
// evaluator disagree about the tree, which should not happen; treating it as
// absent keeps presence checks fail-closed.
func (r Resolved) Lookup(path string) Resolution {
	if res, ok := r[path]; ok {
		return res
	}
	return Resolution{Path: path, Err: &NotFoundError{Path: path}}
}

// Present reports whether the path resolved to content.
func (r Resolved) Present(path string) bool {
	res := r.Lookup(path)
	return res.Err == nil
}

// ApplyResolved substitutes resolved content into variable bindings: every
// binding whose string value is a reference path with successful resolution is
// replaced by the resolved content. Bindings whose paths failed to resolve are
// left untouched so the evaluator can surface a precise error if and when the
// variable is used. The input map is not modified.
func ApplyResolved(bindings map[string]any, resolved Resolved) map[string]any {
	out := make(map[string]any, len(bindings))
	for name, value := range bindings {
		out[name] = value
		s, ok := value.(string)
		if !ok || !IsReference(s) {
			continue
		}
		if res := resolved.Lookup(s); res.Err == nil {
			out[name] = res.Content
		}
	}
	return out
}
