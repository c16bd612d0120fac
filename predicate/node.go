package predicate

import (
	"regexp"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/tak-mesh/cot-router/cottype"
)

// GeoBBox is a geographic bounding box. Non-antimeridian boxes require
// MinLon <= MaxLon; an antimeridian box wraps through +/-180 degrees and
// is stored with MinLon > MaxLon, matched as MinLon <= MaxLon flipped
// into an OR across the wrap.
type GeoBBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	Antimeridian   bool
}

// uidSet backs the Uid predicate. For small allow-sets, bloom is nil and
// exact is consulted directly. For large allow-sets (see
// Builder.bloomThreshold), bloom pre-rejects non-members so the common
// case of a message whose UID isn't in a large denylist never touches
// the map at all; any Bloom-positive result still falls through to the
// exact map, so false positives never leak through as a Pass.
type uidSet struct {
	exact map[string]struct{}
	bloom *bloom.BloomFilter
}

func (u *uidSet) contains(uid string) bool {
	if u.bloom != nil && !u.bloom.TestString(uid) {
		return false
	}
	_, ok := u.exact[uid]
	return ok
}

// Node is one entry in a Tree's arena. Only the fields relevant to Kind
// are populated; the rest are zero. This keeps Evaluate a flat switch
// over Kind with no interface dispatch and no per-node heap object.
type Node struct {
	kind Kind

	// KindAffiliation / KindDimension: bitmask of allowed enum values,
	// 1<<value per member.
	allowMask uint16

	// KindTeam / KindGroupSet: exact-match allow-set.
	stringSet map[string]struct{}

	// KindGroupRegex: compiled at build time, never recompiled.
	regex *regexp.Regexp

	// KindGeoBBox.
	bbox GeoBBox

	// KindUid.
	uids *uidSet

	// KindNot: single child.
	child Handle

	// KindAnd / KindOr: children evaluated left to right, short-circuit.
	children []Handle
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

func affiliationBit(a cottype.Affiliation) uint16 { return 1 << uint16(a) }
func dimensionBit(d cottype.Dimension) uint16     { return 1 << uint16(d) }
