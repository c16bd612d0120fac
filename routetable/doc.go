// Package routetable implements the Route Table: an ordered collection
// of routes plus a routing strategy, the entry point from the message
// pipeline into the filtering core.
//
// Design (spec §9 "Design Notes" and §5 "Concurrency & Resource
// Model"):
//   - The ordered route list is stored as a single slice behind an
//     atomic.Pointer — a copy-on-write structure. Route() loads the
//     pointer once and walks the resulting slice; it never takes a
//     lock, so concurrent Route() calls never contend with each other
//     or with a concurrent Add/Remove.
//   - Add/Remove build a new sorted slice and swap the pointer under an
//     internal mutex; they're rare relative to Route() calls and may
//     block briefly (spec explicitly allows this).
//   - Priority order is (priority desc, insertion order asc): routes
//     are re-sorted with a stable sort on every mutation so ties always
//     resolve to original insertion order.
//   - route.Route's hit/miss counters are plain atomics updated with no
//     table-level lock at all.
package routetable
