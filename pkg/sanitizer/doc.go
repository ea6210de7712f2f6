// Package sanitizer normalizes operator supplied settings, such as
// environment variables and CLI flags, before they are validated.
//
// Ledger records never pass through this package: names, emails, ids and
// dates are stored exactly as the caller sent them.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input never produces an error; it is returned
// in its normalized form and left for config validation to reject.
//
// Normalization includes:
//   - Keywords: collapse whitespace, trim, lowercase ("Atomic " -> "atomic")
//   - Lists: split on commas, trim items, drop empty and repeated items
package sanitizer
