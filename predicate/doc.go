// Package predicate implements the filter predicate algebra: leaf
// predicates over affiliation, dimension, team, group, geography, and
// UID, composed with AND/OR/NOT.
//
// Design:
//   - Predicates are a tagged sum (Kind + inline leaf data) addressed by
//     an integer Handle into a Tree's node arena, not an interface with
//     virtual dispatch — Evaluate is a single jump table over Kind, and
//     composite children sit contiguously in the same arena, which
//     keeps a predicate tree cache-dense for the sub-100ns-per-check
//     target.
//   - A Tree is immutable once Build() returns it. There is no way to
//     mutate a Node after construction; Builder validates everything
//     (regex compiles, geo bounds, non-empty allow-sets) before a Tree
//     ever exists.
//   - Evaluate never allocates. Geo-bbox and affiliation/dimension
//     checks are branch-predictable comparisons or bitmask tests; set
//     membership is a map lookup (no allocation on lookup); the Uid
//     predicate's optional Bloom filter pre-rejects before the map
//     lookup for large allow-sets.
package predicate
