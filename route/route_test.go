package route

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-mesh/cot-router/cottype"
	"github.com/tak-mesh/cot-router/cotview"
	"github.com/tak-mesh/cot-router/predicate"
)

func buildFriendGroundRoute(t *testing.T) *Route {
	t.Helper()
	b := predicate.NewBuilder()
	aff, err := b.Affiliation(cottype.AffFriend, cottype.AffAssumedFriend)
	require.NoError(t, err)
	dim, err := b.Dimension(cottype.DimGround)
	require.NoError(t, err)
	root, err := b.And(aff, dim)
	require.NoError(t, err)
	tree := b.Build()

	r, err := New("fg", "friendly ground", 100, tree, root, []string{"blue", "archive"})
	require.NoError(t, err)
	return r
}

func TestRouteConstructionValidation(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	_, err = New("", "x", 0, tree, h, []string{"d"})
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = New("id", "x", 0, tree, h, nil)
	assert.ErrorIs(t, err, ErrNoDestinations)
}

func TestRouteEvaluateIncrementsCounters(t *testing.T) {
	r := buildFriendGroundRoute(t)

	assert.Equal(t, predicate.Pass, r.Evaluate(cotview.View{CoTType: "a-f-G"}))
	assert.Equal(t, predicate.Fail, r.Evaluate(cotview.View{CoTType: "a-h-A"}))

	stats := r.Snapshot()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestRouteDestinationsAreCopied(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	dests := []string{"a", "b"}
	r, err := New("id", "", 0, tree, h, dests)
	require.NoError(t, err)

	dests[0] = "mutated"
	assert.Equal(t, "a", r.Destinations()[0])
}

func TestRouteConcurrentEvaluateConservesCounts(t *testing.T) {
	r := buildFriendGroundRoute(t)

	const goroutines = 8
	const perGoroutine = 100_000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				if i%2 == 0 {
					r.Evaluate(cotview.View{CoTType: "a-f-G"})
				} else {
					r.Evaluate(cotview.View{CoTType: "a-h-A"})
				}
			}
		}()
	}
	wg.Wait()

	stats := r.Snapshot()
	assert.Equal(t, uint64(goroutines*perGoroutine), stats.Hits+stats.Misses)
}
