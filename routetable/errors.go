package routetable

import "errors"

var (
	// ErrDuplicateRoute is returned by Add when a route with the same
	// id is already present.
	ErrDuplicateRoute = errors.New("routetable: route id already present")

	// ErrUnknownRoute is returned by Remove when no route with the
	// given id is present.
	ErrUnknownRoute = errors.New("routetable: no route with given id")

	// ErrUnknownStrategy is returned when constructing a table with an
	// unrecognised Strategy value.
	ErrUnknownStrategy = errors.New("routetable: unknown strategy")

	// ErrRoundRobinUnsupported is returned when a caller asks for the
	// round-robin strategy. Fairness under concurrent access was left
	// unspecified upstream; this implementation reserves the strategy
	// name but does not implement it.
	ErrRoundRobinUnsupported = errors.New("routetable: round_robin strategy is reserved for future work and not implemented")
)
