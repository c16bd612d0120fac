// Package cotview defines the read-only borrow over a parsed CoT record
// that predicates consult. A View's lifetime is tied to the caller; the
// routing core never retains one past a single routing call.
package cotview

// View exposes the fields of a CoT message that filter predicates can
// consult. It is a plain struct rather than an interface: the predicate
// evaluator reads fields directly, so there is no virtual-call
// indirection on the hot path.
type View struct {
	// CoTType is the raw type code, e.g. "a-f-G-E-V-C". Predicates parse
	// it with cottype.Parse on demand; View does not pre-parse it, since
	// not every predicate needs it.
	CoTType string

	UID string

	// Callsign, Group, and Team are optional — nil means the field was
	// absent on the source message, distinct from an empty string.
	Callsign *string
	Group    *string
	Team     *string

	Lat float64
	Lon float64

	// HAE is height above ellipsoid in metres, optional.
	HAE *float64
}
