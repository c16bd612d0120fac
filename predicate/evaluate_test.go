package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-mesh/cot-router/cottype"
	"github.com/tak-mesh/cot-router/cotview"
)

func strPtr(s string) *string { return &s }

func TestAffiliationPredicate(t *testing.T) {
	b := NewBuilder()
	h, err := b.Affiliation(cottype.AffFriend, cottype.AffAssumedFriend)
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{CoTType: "a-f-G"}))
	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{CoTType: "a-a-G"}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{CoTType: "a-h-G"}))
	// Unparseable type code is unknown affiliation, not in the allow-set.
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{CoTType: ""}))
}

func TestDimensionPredicate(t *testing.T) {
	b := NewBuilder()
	h, err := b.Dimension(cottype.DimGround)
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{CoTType: "a-f-G"}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{CoTType: "a-f-A"}))
}

func TestEmptyAllowSetIsBuildError(t *testing.T) {
	b := NewBuilder()
	_, err := b.Affiliation()
	assert.ErrorIs(t, err, ErrEmptyAllowSet)

	_, err = b.Team()
	assert.ErrorIs(t, err, ErrEmptyAllowSet)

	_, err = b.Uid()
	assert.ErrorIs(t, err, ErrEmptyAllowSet)
}

func TestTeamAndGroupPredicates(t *testing.T) {
	b := NewBuilder()
	team, err := b.Team("blue", "red")
	require.NoError(t, err)
	group, err := b.GroupSet("alpha")
	require.NoError(t, err)
	regex, err := b.GroupRegex("^bravo-\\d+$")
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Pass, tree.Evaluate(team, cotview.View{Team: strPtr("blue")}))
	assert.Equal(t, Fail, tree.Evaluate(team, cotview.View{Team: strPtr("green")}))
	assert.Equal(t, Fail, tree.Evaluate(team, cotview.View{}))

	assert.Equal(t, Pass, tree.Evaluate(group, cotview.View{Group: strPtr("alpha")}))
	assert.Equal(t, Fail, tree.Evaluate(group, cotview.View{Group: strPtr("bravo-1")}))

	assert.Equal(t, Pass, tree.Evaluate(regex, cotview.View{Group: strPtr("bravo-42")}))
	assert.Equal(t, Fail, tree.Evaluate(regex, cotview.View{Group: strPtr("alpha")}))
	assert.Equal(t, Fail, tree.Evaluate(regex, cotview.View{}))
}

func TestGeoBBoxAntimeridian(t *testing.T) {
	b := NewBuilder()
	h, err := b.GeoBBox(-10, 10, 170, -170, true)
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{Lat: 0, Lon: 179}))
	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{Lat: 0, Lon: -179}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{Lat: 0, Lon: 0}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{Lat: 20, Lon: 179}))
}

func TestGeoBBoxNaNFails(t *testing.T) {
	b := NewBuilder()
	h, err := b.GeoBBox(-10, 10, -10, 10, false)
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{Lat: math.NaN(), Lon: 0}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{Lat: 0, Lon: math.NaN()}))
}

func TestInvalidBBoxRejected(t *testing.T) {
	b := NewBuilder()
	_, err := b.GeoBBox(10, -10, 0, 10, false)
	assert.ErrorIs(t, err, ErrInvalidBBox)

	_, err = b.GeoBBox(-10, 10, 10, -10, false)
	assert.ErrorIs(t, err, ErrInvalidBBox)
}

func TestUidSetExact(t *testing.T) {
	b := NewBuilder()
	h, err := b.Uid("UID-1", "UID-2")
	require.NoError(t, err)
	tree := b.Build()

	assert.Equal(t, Pass, tree.Evaluate(h, cotview.View{UID: "UID-1"}))
	assert.Equal(t, Fail, tree.Evaluate(h, cotview.View{UID: "UID-3"}))
}

func TestUidSetBloomBacked(t *testing.T) {
	b := NewBuilder().WithBloomThreshold(256)
	allow := make([]string, 0, 10000)
	for i := 0; i < 10000; i++ {
		allow = append(allow, uidFor(i))
	}
	h, err := b.Uid(allow...)
	require.NoError(t, err)
	tree := b.Build()

	for i := 0; i < 10000; i++ {
		require.Equal(t, Pass, tree.Evaluate(h, cotview.View{UID: uidFor(i)}), "uid %d", i)
	}

	failCount := 0
	for i := 10000; i < 20000; i++ {
		if tree.Evaluate(h, cotview.View{UID: uidFor(i)}) == Fail {
			failCount++
		}
	}
	assert.Equal(t, 10000, failCount, "bloom false positives must not leak through as Pass")
}

func uidFor(i int) string {
	const hex = "0123456789abcdef"
	buf := make([]byte, 12)
	buf[0], buf[1], buf[2], buf[3] = 'U', 'I', 'D', '-'
	n := i
	for j := 11; j >= 4; j-- {
		buf[j] = hex[n%16]
		n /= 16
	}
	return string(buf)
}

func TestNotInvolution(t *testing.T) {
	b := NewBuilder()
	base, err := b.Affiliation(cottype.AffFriend)
	require.NoError(t, err)
	not1, err := b.Not(base)
	require.NoError(t, err)
	not2, err := b.Not(not1)
	require.NoError(t, err)
	tree := b.Build()

	view := cotview.View{CoTType: "a-f-G"}
	assert.Equal(t, tree.Evaluate(base, view), tree.Evaluate(not2, view))

	view2 := cotview.View{CoTType: "a-h-G"}
	assert.Equal(t, tree.Evaluate(base, view2), tree.Evaluate(not2, view2))
}

func TestAndOrIdentities(t *testing.T) {
	b := NewBuilder()
	single, err := b.Affiliation(cottype.AffFriend)
	require.NoError(t, err)
	andEmpty, err := b.And()
	require.NoError(t, err)
	orEmpty, err := b.Or()
	require.NoError(t, err)
	andSingle, err := b.And(single)
	require.NoError(t, err)
	orSingle, err := b.Or(single)
	require.NoError(t, err)
	tree := b.Build()

	view := cotview.View{CoTType: "a-h-G"}
	assert.Equal(t, Pass, tree.Evaluate(andEmpty, view))
	assert.Equal(t, Fail, tree.Evaluate(orEmpty, view))
	assert.Equal(t, tree.Evaluate(single, view), tree.Evaluate(andSingle, view))
	assert.Equal(t, tree.Evaluate(single, view), tree.Evaluate(orSingle, view))
}

func TestAndOrShortCircuit(t *testing.T) {
	b := NewBuilder()
	friend, err := b.Affiliation(cottype.AffFriend)
	require.NoError(t, err)
	ground, err := b.Dimension(cottype.DimGround)
	require.NoError(t, err)
	and, err := b.And(friend, ground)
	require.NoError(t, err)
	or, err := b.Or(friend, ground)
	require.NoError(t, err)
	tree := b.Build()

	// friend+ground: matches both.
	assert.Equal(t, Pass, tree.Evaluate(and, cotview.View{CoTType: "a-f-G"}))
	// friend+air: affiliation matches, dimension doesn't -> AND fails.
	assert.Equal(t, Fail, tree.Evaluate(and, cotview.View{CoTType: "a-f-A"}))
	// hostile+ground: affiliation fails -> OR still passes via dimension.
	assert.Equal(t, Pass, tree.Evaluate(or, cotview.View{CoTType: "a-h-G"}))
	assert.Equal(t, Fail, tree.Evaluate(or, cotview.View{CoTType: "a-h-A"}))
}

func TestParserNeverPanics(t *testing.T) {
	inputs := []string{"", "a", "a-", "a-f", "a-f-", "----", "b-m-p", "xyz", "a-zz-GG-extra-tokens-here"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { cottype.Parse(in) })
	}
}
