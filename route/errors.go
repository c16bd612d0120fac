package route

import "errors"

var (
	// ErrEmptyID is returned when constructing a Route with no id.
	ErrEmptyID = errors.New("route: id must not be empty")

	// ErrNoDestinations is returned when constructing a Route with an
	// empty destination list.
	ErrNoDestinations = errors.New("route: must have at least one destination")

	// ErrInvalidRoot is returned when constructing a Route whose root
	// predicate handle wasn't produced by the given tree's builder.
	ErrInvalidRoot = errors.New("route: root handle is not valid for the given predicate tree")
)
