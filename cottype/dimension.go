package cottype

// Dimension is the battle dimension of a tracked entity, the third token
// of an atom type code (e.g. the "G" in "a-f-G").
type Dimension uint8

const (
	DimUnknown Dimension = iota
	DimSpace
	DimAir
	DimGround
	DimSeaSurface
	DimSeaSubsurface
	DimSOF
	DimOther
)

// String returns the single-letter MIL-STD-2525 code for d.
func (d Dimension) String() string {
	switch d {
	case DimSpace:
		return "P"
	case DimAir:
		return "A"
	case DimGround:
		return "G"
	case DimSeaSurface:
		return "S"
	case DimSeaSubsurface:
		return "U"
	case DimSOF:
		return "F"
	case DimOther:
		return "X"
	default:
		return "Z"
	}
}

var dimensionByByte = [256]Dimension{}

func init() {
	for i := range dimensionByByte {
		dimensionByByte[i] = DimUnknown
	}
	dimensionByByte['P'] = DimSpace
	dimensionByByte['A'] = DimAir
	dimensionByByte['G'] = DimGround
	dimensionByByte['S'] = DimSeaSurface
	dimensionByByte['U'] = DimSeaSubsurface
	dimensionByByte['F'] = DimSOF
	dimensionByByte['X'] = DimOther
	dimensionByByte['Z'] = DimUnknown
}

// ParseDimensionName maps the config-document dimension names (spec §6)
// to their Dimension value.
func ParseDimensionName(name string) (Dimension, bool) {
	switch name {
	case "space":
		return DimSpace, true
	case "air":
		return DimAir, true
	case "ground":
		return DimGround, true
	case "sea_surface":
		return DimSeaSurface, true
	case "sea_subsurface":
		return DimSeaSubsurface, true
	case "sof":
		return DimSOF, true
	case "other":
		return DimOther, true
	case "unknown":
		return DimUnknown, true
	default:
		return 0, false
	}
}
