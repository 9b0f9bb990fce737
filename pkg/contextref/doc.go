// Package contextref resolves plp:// context references to externally-stored
// content.
//
// A context reference is a string value of the form
//
//	plp://<collection>/<asset-id>
//
// that stands in for content living outside the template: a shared snippet, a
// retrieved document, a per-tenant preamble. References appear two ways in EPL
// documents: as variable binding values (substituted before rendering) and as
// context(...) presence predicates in conditions.
//
// # Resolution Protocol
//
// The Resolver interface has a single-lookup form and a batched form.
// ResolveBatch is required to behave exactly like independent Resolve calls,
// so evaluation can pre-scan a document with CollectPaths, fetch everything in
// one round trip, and then run entirely from the Resolved map. Failures are
// typed: NotFoundError (valid path, nothing stored — a presence predicate on
// it is simply false), InvalidPathError (rejected locally before any network
// traffic), and ResolveError (transport or storage failure).
//
// # Backends
//
// MemoryResolver is a map-backed store for tests and preloaded setups.
// SQLiteResolver persists assets in a local SQLite database. HTTPResolver
// talks to a remote context service. GitSource is not a Resolver itself: it
// keeps a clone of an asset repository and syncs its files into an AssetStore
// such as SQLiteResolver.
package contextref
