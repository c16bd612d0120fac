package routetable

// Strategy selects how a RouteTable turns its set of matching routes
// into a destination list for a given message.
type Strategy uint8

const (
	// Multicast evaluates every route and union-merges the
	// destinations of every match, falling back to the table's
	// default destination when nothing matches.
	Multicast Strategy = iota

	// Unicast (first-match) stops at the first matching route in
	// priority order and returns only its destinations. There is no
	// default-destination fallback in this strategy.
	Unicast

	// RoundRobin is reserved: among matching routes, pick one per call
	// via a per-table monotonic counter. Concurrent-access fairness
	// was never fully specified upstream, so this strategy is not
	// implemented; constructing a table with it returns
	// ErrRoundRobinUnsupported.
	RoundRobin
)

func (s Strategy) String() string {
	switch s {
	case Multicast:
		return "multicast"
	case Unicast:
		return "unicast"
	case RoundRobin:
		return "round_robin"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a config-document strategy name to a Strategy
// value. "first_match" is accepted as a synonym for Unicast.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "multicast":
		return Multicast, true
	case "unicast", "first_match":
		return Unicast, true
	case "round_robin", "roundrobin":
		return RoundRobin, true
	default:
		return 0, false
	}
}
