// Package judge implements the AI-judge capability behind judge() predicates.
//
// A Judge answers a free-text yes/no question about a value. The
// provider-backed implementation pins temperature to zero, caps the answer at
// a handful of tokens, and maps the reply to a boolean conservatively: only a
// trimmed, lower-cased, exact "yes" counts as true. Everything else, including
// hedged answers like "maybe" or "probably yes", counts as false.
//
// Judged answers are cached by content address: a SHA-256 key over the
// canonical serialization of the value, the question, the provider type, and
// the model. Entries expire after a configurable TTL (five minutes by
// default) and are evicted lazily on read; a cron-scheduled Sweeper reclaims
// entries that are never read again. Only confirmed answers are cached, so a
// failed provider call is retried on the next evaluation.
package judge
