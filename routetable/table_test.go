package routetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tak-mesh/cot-router/cottype"
	"github.com/tak-mesh/cot-router/cotview"
	"github.com/tak-mesh/cot-router/predicate"
	"github.com/tak-mesh/cot-router/route"
)

func mustRoute(t *testing.T, id string, priority int32, root predicate.Handle, tree *predicate.Tree, dests ...string) *route.Route {
	t.Helper()
	r, err := route.New(id, "", priority, tree, root, dests)
	require.NoError(t, err)
	return r
}

// TestScenarioS1MulticastFriendlyGround reproduces spec scenario S1.
func TestScenarioS1MulticastFriendlyGround(t *testing.T) {
	b := predicate.NewBuilder()
	aff, err := b.Affiliation(cottype.AffFriend, cottype.AffAssumedFriend)
	require.NoError(t, err)
	dim, err := b.Dimension(cottype.DimGround)
	require.NoError(t, err)
	root, err := b.And(aff, dim)
	require.NoError(t, err)
	tree := b.Build()

	fg := mustRoute(t, "fg", 100, root, tree, "blue", "archive")

	table, err := New(Multicast, "dlq")
	require.NoError(t, err)
	require.NoError(t, table.Add(fg))

	result := table.Route(cotview.View{CoTType: "a-f-G-E-V-C", UID: "T1", Lat: 0, Lon: 0})

	assert.Equal(t, []string{"blue", "archive"}, result.Destinations)
	assert.Equal(t, []string{"fg"}, result.MatchedRouteIDs)
	assert.False(t, result.UsedDefault)
	assert.Equal(t, uint64(1), fg.Snapshot().Hits)
}

// TestScenarioS2MulticastFallback reproduces spec scenario S2.
func TestScenarioS2MulticastFallback(t *testing.T) {
	b := predicate.NewBuilder()
	aff, err := b.Affiliation(cottype.AffFriend, cottype.AffAssumedFriend)
	require.NoError(t, err)
	dim, err := b.Dimension(cottype.DimGround)
	require.NoError(t, err)
	root, err := b.And(aff, dim)
	require.NoError(t, err)
	tree := b.Build()

	fg := mustRoute(t, "fg", 100, root, tree, "blue", "archive")

	table, err := New(Multicast, "dlq")
	require.NoError(t, err)
	require.NoError(t, table.Add(fg))

	result := table.Route(cotview.View{CoTType: "a-h-A"})

	assert.Equal(t, []string{"dlq"}, result.Destinations)
	assert.Empty(t, result.MatchedRouteIDs)
	assert.True(t, result.UsedDefault)
	assert.Equal(t, uint64(1), fg.Snapshot().Misses)
}

// TestScenarioS3FirstMatchPriority reproduces spec scenario S3.
func TestScenarioS3FirstMatchPriority(t *testing.T) {
	b := predicate.NewBuilder()
	hostileOnly, err := b.Affiliation(cottype.AffHostile)
	require.NoError(t, err)
	hostileOrSuspect, err := b.Affiliation(cottype.AffHostile, cottype.AffSuspect)
	require.NoError(t, err)
	tree := b.Build()

	r1 := mustRoute(t, "r1", 200, hostileOnly, tree, "red")
	r2 := mustRoute(t, "r2", 100, hostileOrSuspect, tree, "red-archive")

	table, err := New(Unicast, "")
	require.NoError(t, err)
	require.NoError(t, table.Add(r1))
	require.NoError(t, table.Add(r2))

	result := table.Route(cotview.View{CoTType: "a-s-G"})

	assert.Equal(t, []string{"r2"}, result.MatchedRouteIDs)
	assert.Equal(t, []string{"red-archive"}, result.Destinations)
	assert.Equal(t, uint64(1), r1.Snapshot().Misses)
	assert.Equal(t, uint64(1), r2.Snapshot().Hits)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	table, err := New(Multicast, "")
	require.NoError(t, err)
	require.NoError(t, table.Add(mustRoute(t, "x", 0, h, tree, "d")))

	err = table.Add(mustRoute(t, "x", 0, h, tree, "d2"))
	assert.ErrorIs(t, err, ErrDuplicateRoute)
}

func TestRemoveUnknownRoute(t *testing.T) {
	table, err := New(Multicast, "")
	require.NoError(t, err)

	err = table.Remove("nope")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestRemoveDropsCounters(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	table, err := New(Multicast, "")
	require.NoError(t, err)
	r := mustRoute(t, "x", 0, h, tree, "d")
	require.NoError(t, table.Add(r))

	table.Route(cotview.View{Team: strPtr("blue")})
	require.NoError(t, table.Remove("x"))

	stats := table.Stats()
	assert.Empty(t, stats.PerRoute)
}

func TestPriorityOrderingWithTieBreak(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	table, err := New(Multicast, "")
	require.NoError(t, err)

	first := mustRoute(t, "first", 50, h, tree, "d1")
	second := mustRoute(t, "second", 50, h, tree, "d2")
	highest := mustRoute(t, "highest", 100, h, tree, "d3")

	require.NoError(t, table.Add(first))
	require.NoError(t, table.Add(second))
	require.NoError(t, table.Add(highest))

	result := table.Route(cotview.View{Team: strPtr("blue")})
	assert.Equal(t, []string{"highest", "first", "second"}, result.MatchedRouteIDs)
	assert.Equal(t, []string{"d3", "d1", "d2"}, result.Destinations)
}

func TestUnicastNoDefaultFallback(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	table, err := New(Unicast, "dlq")
	require.NoError(t, err)
	require.NoError(t, table.Add(mustRoute(t, "x", 0, h, tree, "d")))

	result := table.Route(cotview.View{Team: strPtr("red")})
	assert.Empty(t, result.Destinations)
	assert.Empty(t, result.MatchedRouteIDs)
	assert.False(t, result.UsedDefault)

	stats := table.Stats()
	assert.Equal(t, uint64(1), stats.TotalDropped)
}

func TestRouteDeterministic(t *testing.T) {
	b := predicate.NewBuilder()
	h, err := b.Team("blue")
	require.NoError(t, err)
	tree := b.Build()

	table, err := New(Multicast, "")
	require.NoError(t, err)
	require.NoError(t, table.Add(mustRoute(t, "x", 0, h, tree, "d")))

	view := cotview.View{Team: strPtr("blue")}
	first := table.Route(view)
	second := table.Route(view)
	assert.Equal(t, first, second)
}

func TestRoundRobinStrategyRejected(t *testing.T) {
	_, err := New(RoundRobin, "")
	assert.ErrorIs(t, err, ErrRoundRobinUnsupported)
}

func strPtr(s string) *string { return &s }
