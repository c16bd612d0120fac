package routeconfig

// Document is the top-level routing configuration document, decodable
// from either YAML or JSON.
type Document struct {
	Strategy           string      `yaml:"strategy" json:"strategy" validate:"required,oneof=multicast unicast first_match"`
	DefaultDestination string      `yaml:"default_destination,omitempty" json:"default_destination,omitempty"`
	Routes             []RouteSpec `yaml:"routes" json:"routes" validate:"required,min=1,dive"`
}

// RouteSpec is one entry in Document.Routes.
type RouteSpec struct {
	ID           string     `yaml:"id" json:"id" validate:"required"`
	Description  string     `yaml:"description,omitempty" json:"description,omitempty"`
	Priority     int32      `yaml:"priority" json:"priority"`
	Filter       FilterSpec `yaml:"filter" json:"filter" validate:"required"`
	Destinations []string   `yaml:"destinations" json:"destinations" validate:"required,min=1,dive,required"`
}

// FilterSpec is a tagged filter-tree node. Exactly one of the leaf or
// compositor fields is populated, selected by Type.
type FilterSpec struct {
	Type string `yaml:"type" json:"type" validate:"required,oneof=affiliation dimension team group geo_bbox uid not and or"`

	// Leaf predicate options.
	Allow []string `yaml:"allow,omitempty" json:"allow,omitempty"`
	Regex string   `yaml:"regex,omitempty" json:"regex,omitempty"`

	MinLat       float64 `yaml:"min_lat,omitempty" json:"min_lat,omitempty"`
	MaxLat       float64 `yaml:"max_lat,omitempty" json:"max_lat,omitempty"`
	MinLon       float64 `yaml:"min_lon,omitempty" json:"min_lon,omitempty"`
	MaxLon       float64 `yaml:"max_lon,omitempty" json:"max_lon,omitempty"`
	Antimeridian bool    `yaml:"antimeridian,omitempty" json:"antimeridian,omitempty"`

	// Compositor options.
	Filter  *FilterSpec  `yaml:"filter,omitempty" json:"filter,omitempty"`
	Filters []FilterSpec `yaml:"filters,omitempty" json:"filters,omitempty"`
}
