// Package eval reduces a parsed EPL document to its evaluated form: every
// conditional resolved to exactly one branch, imports and includes expanded,
// and context references already fetched.
//
// Evaluation runs in two phases. Phase one statically scans the whole
// expanded tree (both branches of every conditional) for context paths and
// resolves them in a single batched round trip. Phase two reduces the tree
// depth-first in document order, consulting the pre-resolved context map for
// presence predicates and the AI judge for judged predicates. Branch
// selection happens before a branch's children are visited, so predicates
// nested inside an unselected branch are never evaluated; this is what bounds
// judge-call cost to the branches actually taken, and it is why judge calls
// are not pre-batched the way context paths are.
//
// Evaluation is atomic: callers receive either a fully evaluated document or
// an error, never a half-pruned tree. The input document is never mutated;
// untouched subtrees are shared by reference into the output.
package eval
