package predicate

import (
	"fmt"
	"regexp"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/tak-mesh/cot-router/cottype"
)

// DefaultBloomThreshold is the Uid allow-set size above which a Bloom
// filter pre-filters the exact set, per spec §4.C ("e.g., 256").
const DefaultBloomThreshold = 256

// defaultBloomFPRate targets the spec's "~1% false-positive rate".
const defaultBloomFPRate = 0.01

// Builder constructs an immutable Tree one node at a time. All
// validation (regex compiles, geo bounds, non-empty allow-sets, no
// duplicate members) happens here, at build time — never on the hot
// evaluation path.
//
// Builder is not safe for concurrent use; build one Tree per goroutine,
// then share the resulting *Tree freely (it is immutable and read-only).
type Builder struct {
	nodes          []Node
	bloomThreshold int
}

// NewBuilder returns a Builder using DefaultBloomThreshold.
func NewBuilder() *Builder {
	return &Builder{bloomThreshold: DefaultBloomThreshold}
}

// WithBloomThreshold overrides the Uid allow-set size above which a
// Bloom pre-filter is constructed.
func (b *Builder) WithBloomThreshold(n int) *Builder {
	b.bloomThreshold = n
	return b
}

func (b *Builder) add(n Node) Handle {
	b.nodes = append(b.nodes, n)
	return Handle(len(b.nodes) - 1)
}

func (b *Builder) valid(h Handle) bool {
	return h >= 0 && int(h) < len(b.nodes)
}

// Affiliation builds a leaf matching any of the given affiliation
// codes. allow must be non-empty and duplicate-free.
func (b *Builder) Affiliation(allow ...cottype.Affiliation) (Handle, error) {
	if len(allow) == 0 {
		return invalidHandle, ErrEmptyAllowSet
	}
	var mask uint16
	for _, a := range allow {
		bit := affiliationBit(a)
		if mask&bit != 0 {
			return invalidHandle, fmt.Errorf("%w: affiliation %q", ErrDuplicateMember, a)
		}
		mask |= bit
	}
	return b.add(Node{kind: KindAffiliation, allowMask: mask}), nil
}

// Dimension builds a leaf matching any of the given battle dimensions.
func (b *Builder) Dimension(allow ...cottype.Dimension) (Handle, error) {
	if len(allow) == 0 {
		return invalidHandle, ErrEmptyAllowSet
	}
	var mask uint16
	for _, d := range allow {
		bit := dimensionBit(d)
		if mask&bit != 0 {
			return invalidHandle, fmt.Errorf("%w: dimension %q", ErrDuplicateMember, d)
		}
		mask |= bit
	}
	return b.add(Node{kind: KindDimension, allowMask: mask}), nil
}

func buildStringSet(allow []string) (map[string]struct{}, error) {
	if len(allow) == 0 {
		return nil, ErrEmptyAllowSet
	}
	set := make(map[string]struct{}, len(allow))
	for _, v := range allow {
		if _, dup := set[v]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, v)
		}
		set[v] = struct{}{}
	}
	return set, nil
}

// Team builds a leaf matching any of the given exact team names.
func (b *Builder) Team(allow ...string) (Handle, error) {
	set, err := buildStringSet(allow)
	if err != nil {
		return invalidHandle, err
	}
	return b.add(Node{kind: KindTeam, stringSet: set}), nil
}

// GroupSet builds a leaf matching any of the given exact group names.
func (b *Builder) GroupSet(allow ...string) (Handle, error) {
	set, err := buildStringSet(allow)
	if err != nil {
		return invalidHandle, err
	}
	return b.add(Node{kind: KindGroupSet, stringSet: set}), nil
}

// GroupRegex builds a leaf matching the group field against a compiled
// regular expression. The pattern is compiled once, here; Evaluate only
// ever calls MatchString against the pre-compiled expression.
func (b *Builder) GroupRegex(pattern string) (Handle, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return invalidHandle, fmt.Errorf("predicate: invalid group regex %q: %w", pattern, err)
	}
	return b.GroupRegexCompiled(re), nil
}

// GroupRegexCompiled builds a leaf from an already-compiled regular
// expression, for callers (such as routeconfig's build-time regex
// cache) that compile and cache patterns themselves.
func (b *Builder) GroupRegexCompiled(re *regexp.Regexp) Handle {
	return b.add(Node{kind: KindGroupRegex, regex: re})
}

// GeoBBox builds a leaf matching a geographic bounding box. For a
// non-antimeridian box, minLon must be <= maxLon; an antimeridian box
// (wrapping through +/-180) is expressed with antimeridian=true and
// minLon may then exceed maxLon.
func (b *Builder) GeoBBox(minLat, maxLat, minLon, maxLon float64, antimeridian bool) (Handle, error) {
	if !(minLat <= maxLat) {
		return invalidHandle, fmt.Errorf("%w: min_lat %v > max_lat %v", ErrInvalidBBox, minLat, maxLat)
	}
	if !antimeridian && !(minLon <= maxLon) {
		return invalidHandle, fmt.Errorf("%w: min_lon %v > max_lon %v (set antimeridian to allow wrap)", ErrInvalidBBox, minLon, maxLon)
	}
	return b.add(Node{kind: KindGeoBBox, bbox: GeoBBox{
		MinLat: minLat, MaxLat: maxLat,
		MinLon: minLon, MaxLon: maxLon,
		Antimeridian: antimeridian,
	}}), nil
}

// Uid builds a leaf matching any of the given exact UIDs. When len(allow)
// exceeds the builder's Bloom threshold, a Bloom filter sized for ~1%
// false-positive rate pre-filters lookups; the exact set always backs
// the final decision, so a Bloom false positive never produces a Pass.
func (b *Builder) Uid(allow ...string) (Handle, error) {
	set, err := buildStringSet(allow)
	if err != nil {
		return invalidHandle, err
	}

	u := &uidSet{exact: set}
	if len(allow) > b.bloomThreshold {
		filter := bloom.NewWithEstimates(uint(len(allow)), defaultBloomFPRate)
		for uid := range set {
			filter.AddString(uid)
		}
		u.bloom = filter
	}

	return b.add(Node{kind: KindUid, uids: u}), nil
}

// Not builds the logical negation of child. Double negation is a
// syntactic form — Not(Not(h)) is two nodes, not simplified away.
func (b *Builder) Not(child Handle) (Handle, error) {
	if !b.valid(child) {
		return invalidHandle, ErrInvalidHandle
	}
	return b.add(Node{kind: KindNot, child: child}), nil
}

// And builds an n-ary conjunction, evaluated left to right with
// short-circuit on the first Fail. And() with no children is Pass.
func (b *Builder) And(children ...Handle) (Handle, error) {
	for _, c := range children {
		if !b.valid(c) {
			return invalidHandle, ErrInvalidHandle
		}
	}
	cp := append([]Handle(nil), children...)
	return b.add(Node{kind: KindAnd, children: cp}), nil
}

// Or builds an n-ary disjunction, evaluated left to right with
// short-circuit on the first Pass. Or() with no children is Fail.
func (b *Builder) Or(children ...Handle) (Handle, error) {
	for _, c := range children {
		if !b.valid(c) {
			return invalidHandle, ErrInvalidHandle
		}
	}
	cp := append([]Handle(nil), children...)
	return b.add(Node{kind: KindOr, children: cp}), nil
}

// Build finalizes the arena into an immutable Tree. The Builder remains
// usable afterward (nodes already built stay valid), but callers should
// typically build one Tree and discard the Builder.
func (b *Builder) Build() *Tree {
	nodes := append([]Node(nil), b.nodes...)
	return &Tree{nodes: nodes}
}
