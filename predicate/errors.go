package predicate

import "errors"

var (
	// ErrEmptyAllowSet is returned when an Affiliation, Dimension, Team,
	// Group, or Uid predicate is constructed with no allowed members.
	// Spec: "empty Affiliation/Dimension/Team/Group/Uid predicates are a
	// build error — use And/Or emptiness to express identities."
	ErrEmptyAllowSet = errors.New("predicate: empty allow-set")

	// ErrInvalidBBox is returned when a GeoBBox's bounds are malformed:
	// MinLat > MaxLat, or (for a non-antimeridian box) MinLon > MaxLon.
	ErrInvalidBBox = errors.New("predicate: invalid geo bounding box")

	// ErrDuplicateMember is returned when an allow-set contains the same
	// member twice.
	ErrDuplicateMember = errors.New("predicate: duplicate member in allow-set")

	// ErrInvalidHandle is returned when a Handle passed to And/Or/Not is
	// outside the range of nodes already built by this Builder. Handles
	// are plain arena indices, so a Handle from another Builder that
	// falls inside this Builder's range is not detected.
	ErrInvalidHandle = errors.New("predicate: handle not built by this tree")
)
