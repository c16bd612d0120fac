package predicate

import (
	"github.com/tak-mesh/cot-router/cottype"
	"github.com/tak-mesh/cot-router/cotview"
)

// Tree is an immutable arena of predicate Nodes, addressed by Handle.
// A Tree is safe for unlimited concurrent Evaluate calls — there is no
// mutable state anywhere in a built Tree.
type Tree struct {
	nodes []Node
}

// Root is a convenience for trees with a single top-level node at index
// len(nodes)-1 (the last node Build() saw, which for the common
// one-predicate-per-route case is the predicate the caller meant as the
// root). Callers that build several independent subtrees in one Builder
// should track their own root Handle instead of relying on this.
func (t *Tree) Root() Handle {
	if len(t.nodes) == 0 {
		return invalidHandle
	}
	return Handle(len(t.nodes) - 1)
}

// Evaluate runs the predicate at h against view and returns Pass or
// Fail. Evaluate never allocates and never blocks: leaf checks are
// array/map lookups or branch-free float comparisons, and compositors
// short-circuit per spec §4.C.
func (t *Tree) Evaluate(h Handle, view cotview.View) Result {
	if h < 0 || int(h) >= len(t.nodes) {
		return Fail
	}
	n := &t.nodes[h]

	switch n.kind {
	case KindAffiliation:
		parsed := cottype.Parse(view.CoTType)
		return boolResult(n.allowMask&affiliationBit(parsed.Affiliation) != 0)

	case KindDimension:
		parsed := cottype.Parse(view.CoTType)
		return boolResult(n.allowMask&dimensionBit(parsed.Dimension) != 0)

	case KindTeam:
		if view.Team == nil {
			return Fail
		}
		_, ok := n.stringSet[*view.Team]
		return boolResult(ok)

	case KindGroupSet:
		if view.Group == nil {
			return Fail
		}
		_, ok := n.stringSet[*view.Group]
		return boolResult(ok)

	case KindGroupRegex:
		if view.Group == nil {
			return Fail
		}
		return boolResult(n.regex.MatchString(*view.Group))

	case KindGeoBBox:
		return boolResult(evaluateBBox(n.bbox, view.Lat, view.Lon))

	case KindUid:
		return boolResult(n.uids.contains(view.UID))

	case KindNot:
		return boolResult(t.Evaluate(n.child, view) == Fail)

	case KindAnd:
		for _, c := range n.children {
			if t.Evaluate(c, view) == Fail {
				return Fail
			}
		}
		return Pass

	case KindOr:
		for _, c := range n.children {
			if t.Evaluate(c, view) == Pass {
				return Pass
			}
		}
		return Fail

	default:
		return Fail
	}
}

func boolResult(ok bool) Result {
	if ok {
		return Pass
	}
	return Fail
}
