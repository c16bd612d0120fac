// Package cottype parses Cursor-on-Target type codes — the hyphen
// separated token strings such as "a-f-G-E-V-C" that encode a tracked
// entity's category, affiliation, and battle dimension per MIL-STD-2525.
//
// Parse never allocates and never panics; unrecognised bytes resolve to
// the Unknown/Other enum values rather than an error, so callers never
// need to handle a parse failure on the hot path.
package cottype
