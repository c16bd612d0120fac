package cottype

// Affiliation is the allegiance of a tracked entity, the second token of
// an atom type code (e.g. the "f" in "a-f-G").
type Affiliation uint8

const (
	// AffUnknown is both the zero value and the fallback for any byte
	// that isn't one of the recognised affiliation codes.
	AffUnknown Affiliation = iota
	AffPending
	AffAssumedFriend
	AffFriend
	AffNeutral
	AffSuspect
	AffHostile
	AffJoker
	AffFaker
	AffNone
	AffOther
)

// String returns the single-letter MIL-STD-2525 code for a, or "u" for
// any value outside the known set.
func (a Affiliation) String() string {
	switch a {
	case AffPending:
		return "p"
	case AffAssumedFriend:
		return "a"
	case AffFriend:
		return "f"
	case AffNeutral:
		return "n"
	case AffSuspect:
		return "s"
	case AffHostile:
		return "h"
	case AffJoker:
		return "j"
	case AffFaker:
		return "k"
	case AffNone:
		return "o"
	case AffOther:
		return "x"
	default:
		return "u"
	}
}

// affiliationByByte maps the raw type-code byte directly to its
// Affiliation in one array load — the spec's "256-entry lookup
// byte→enum, consulted with a single load" — rather than a sequence of
// string/byte comparisons.
var affiliationByByte = [256]Affiliation{}

func init() {
	for i := range affiliationByByte {
		affiliationByByte[i] = AffUnknown
	}
	affiliationByByte['p'] = AffPending
	affiliationByByte['u'] = AffUnknown
	affiliationByByte['a'] = AffAssumedFriend
	affiliationByByte['f'] = AffFriend
	affiliationByByte['n'] = AffNeutral
	affiliationByByte['s'] = AffSuspect
	affiliationByByte['h'] = AffHostile
	affiliationByByte['j'] = AffJoker
	affiliationByByte['k'] = AffFaker
	affiliationByByte['o'] = AffNone
	affiliationByByte['x'] = AffOther
}

// affiliationClass is a bitmask of which capability predicates an
// Affiliation satisfies, indexed by Affiliation value so IsFriendly etc.
// are a single array load plus a bit test — no data-dependent branching
// over the affiliation's identity.
type affiliationClass uint8

const (
	classFriendly affiliationClass = 1 << iota
	classHostile
	classNeutral
	classUnknown
)

var affiliationClassOf = [11]affiliationClass{
	AffUnknown:       classUnknown,
	AffPending:       classUnknown,
	AffAssumedFriend: classFriendly,
	AffFriend:        classFriendly,
	AffNeutral:       classNeutral,
	AffSuspect:       classHostile,
	AffHostile:       classHostile,
	AffJoker:         classHostile,
	AffFaker:         classHostile,
	AffNone:          classUnknown,
	AffOther:         classUnknown,
}

func (a Affiliation) class() affiliationClass {
	if int(a) >= len(affiliationClassOf) {
		return classUnknown
	}
	return affiliationClassOf[a]
}

// IsFriendly reports whether a is Friend or AssumedFriend.
func (a Affiliation) IsFriendly() bool { return a.class()&classFriendly != 0 }

// IsHostile reports whether a is Hostile, Suspect, Joker, or Faker.
func (a Affiliation) IsHostile() bool { return a.class()&classHostile != 0 }

// IsNeutral reports whether a is Neutral.
func (a Affiliation) IsNeutral() bool { return a.class()&classNeutral != 0 }

// IsUnknown reports whether a is Pending, Unknown, None, Other, or any
// unrecognised byte.
func (a Affiliation) IsUnknown() bool { return a.class()&classUnknown != 0 }

// ParseAffiliationName maps the config-document affiliation names (spec
// §6) to their Affiliation value. The second return is false for any
// unrecognised name — callers use this to reject bad config at compile
// time, unlike the permissive byte-code parser used on the hot path.
func ParseAffiliationName(name string) (Affiliation, bool) {
	switch name {
	case "pending":
		return AffPending, true
	case "unknown":
		return AffUnknown, true
	case "assumedfriend":
		return AffAssumedFriend, true
	case "friend":
		return AffFriend, true
	case "neutral":
		return AffNeutral, true
	case "suspect":
		return AffSuspect, true
	case "hostile":
		return AffHostile, true
	case "joker":
		return AffJoker, true
	case "faker":
		return AffFaker, true
	case "none":
		return AffNone, true
	case "other":
		return AffOther, true
	default:
		return 0, false
	}
}
