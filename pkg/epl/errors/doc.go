// Package errors provides the error taxonomy for EPL document processing.
//
// Errors fall into six categories mirroring the pipeline stages:
//
//   - syntax: lexer/parser errors, collected into an ErrorList rather than raised
//     eagerly so one parse can report every diagnostic at once
//   - validation: malformed context-reference paths, detected locally before any
//     network call is made
//   - resolution: remote failures (path not found, provider error, timeout, rate
//     limit) raised during evaluation and never cached
//   - evaluation: unknown variables or non-boolean values in conditions
//   - render: missing variables at render time, subject to the configured policy
//   - io: file access failures for imports and includes
//
// Parse errors are aggregated and returned as a value; evaluation errors abort the
// in-flight evaluation atomically.
package errors
