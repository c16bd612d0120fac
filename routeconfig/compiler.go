package routeconfig

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/go-playground/validator/v10"

	"github.com/tak-mesh/cot-router/cottype"
	"github.com/tak-mesh/cot-router/predicate"
	"github.com/tak-mesh/cot-router/route"
	"github.com/tak-mesh/cot-router/routetable"
)

// regexCacheSize bounds the build-time regex compile cache. Routing
// documents commonly repeat the same group-regex pattern across
// several routes (e.g. the same callsign prefix applied to multiple
// destinations); caching avoids recompiling it once per occurrence.
// This cache is consulted only during Compile, never on the Route()
// hot path.
const regexCacheSize = 256

// Compiler turns a decoded Document into a *routetable.RouteTable. It
// accumulates every validation failure it finds rather than stopping
// at the first, so Compile's error (when non-nil) is always a
// CompileErrors listing every offending path.
type Compiler struct {
	validate   *validator.Validate
	regexCache *lru.Cache[string, *regexp.Regexp]
}

// NewCompiler returns a ready-to-use Compiler.
func NewCompiler() *Compiler {
	cache, err := lru.New[string, *regexp.Regexp](regexCacheSize)
	if err != nil {
		// Only fails for a non-positive size, which regexCacheSize never is.
		panic(err)
	}
	return &Compiler{
		validate:   validator.New(),
		regexCache: cache,
	}
}

// Compile validates and compiles doc into a RouteTable. It returns a
// CompileErrors (satisfying error) on any failure; the returned table
// is nil whenever err is non-nil.
func (c *Compiler) Compile(doc *Document) (*routetable.RouteTable, error) {
	if err := c.validate.Struct(doc); err != nil {
		return nil, convertValidationError(err)
	}

	strategy, ok := routetable.ParseStrategy(doc.Strategy)
	if !ok {
		return nil, CompileErrors{{Path: "strategy", Message: fmt.Sprintf("unknown strategy %q", doc.Strategy)}}
	}

	var errs CompileErrors
	seenIDs := make(map[string]struct{}, len(doc.Routes))
	routes := make([]*route.Route, 0, len(doc.Routes))

	for i, spec := range doc.Routes {
		path := fmt.Sprintf("routes[%d]", i)

		if _, dup := seenIDs[spec.ID]; dup {
			errs = append(errs, &CompileError{
				Path:       path + ".id",
				Message:    fmt.Sprintf("duplicate route id %q", spec.ID),
				Suggestion: "route ids must be unique within a document",
			})
			continue
		}
		seenIDs[spec.ID] = struct{}{}

		builder := predicate.NewBuilder()
		root, ferrs := c.compileFilter(builder, path+".filter", &spec.Filter)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		tree := builder.Build()

		r, err := route.New(spec.ID, spec.Description, spec.Priority, tree, root, spec.Destinations)
		if err != nil {
			errs = append(errs, &CompileError{Path: path, Message: err.Error()})
			continue
		}
		routes = append(routes, r)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	table, err := routetable.New(strategy, doc.DefaultDestination)
	if err != nil {
		return nil, CompileErrors{{Path: "strategy", Message: err.Error()}}
	}
	for i, r := range routes {
		if err := table.Add(r); err != nil {
			return nil, CompileErrors{{Path: fmt.Sprintf("routes[%d].id", i), Message: err.Error()}}
		}
	}

	return table, nil
}

// compileFilter recursively compiles a FilterSpec into a predicate
// Handle within builder, annotating every error with its document
// path.
func (c *Compiler) compileFilter(builder *predicate.Builder, path string, spec *FilterSpec) (predicate.Handle, CompileErrors) {
	switch spec.Type {
	case "affiliation":
		codes, errs := parseAffiliations(path, spec.Allow)
		if len(errs) > 0 {
			return predicate.Handle(-1), errs
		}
		h, err := builder.Affiliation(codes...)
		return handleOrError(h, err, path)

	case "dimension":
		codes, errs := parseDimensions(path, spec.Allow)
		if len(errs) > 0 {
			return predicate.Handle(-1), errs
		}
		h, err := builder.Dimension(codes...)
		return handleOrError(h, err, path)

	case "team":
		h, err := builder.Team(spec.Allow...)
		return handleOrError(h, err, path)

	case "group":
		if spec.Regex != "" {
			re, err := c.compileRegexCached(spec.Regex)
			if err != nil {
				return predicate.Handle(-1), CompileErrors{{Path: path + ".regex", Message: err.Error()}}
			}
			return builder.GroupRegexCompiled(re), nil
		}
		h, err := builder.GroupSet(spec.Allow...)
		return handleOrError(h, err, path+".allow")

	case "geo_bbox":
		h, err := builder.GeoBBox(spec.MinLat, spec.MaxLat, spec.MinLon, spec.MaxLon, spec.Antimeridian)
		return handleOrError(h, err, path)

	case "uid":
		h, err := builder.Uid(spec.Allow...)
		return handleOrError(h, err, path+".allow")

	case "not":
		if spec.Filter == nil {
			return predicate.Handle(-1), CompileErrors{{Path: path + ".filter", Message: "not requires a nested filter"}}
		}
		child, errs := c.compileFilter(builder, path+".filter", spec.Filter)
		if len(errs) > 0 {
			return predicate.Handle(-1), errs
		}
		h, err := builder.Not(child)
		return handleOrError(h, err, path)

	case "and", "or":
		if len(spec.Filters) == 0 {
			return predicate.Handle(-1), CompileErrors{{Path: path + ".filters", Message: spec.Type + " requires at least one nested filter"}}
		}
		children := make([]predicate.Handle, 0, len(spec.Filters))
		var errs CompileErrors
		for i := range spec.Filters {
			childPath := fmt.Sprintf("%s.filters[%d]", path, i)
			h, childErrs := c.compileFilter(builder, childPath, &spec.Filters[i])
			if len(childErrs) > 0 {
				errs = append(errs, childErrs...)
				continue
			}
			children = append(children, h)
		}
		if len(errs) > 0 {
			return predicate.Handle(-1), errs
		}
		if spec.Type == "and" {
			h, err := builder.And(children...)
			return handleOrError(h, err, path)
		}
		h, err := builder.Or(children...)
		return handleOrError(h, err, path)

	default:
		return predicate.Handle(-1), CompileErrors{{Path: path + ".type", Message: fmt.Sprintf("unrecognised filter type %q", spec.Type)}}
	}
}

func handleOrError(h predicate.Handle, err error, path string) (predicate.Handle, CompileErrors) {
	if err != nil {
		return h, CompileErrors{{Path: path, Message: err.Error()}}
	}
	return h, nil
}

func (c *Compiler) compileRegexCached(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.regexCache.Add(pattern, re)
	return re, nil
}

func parseAffiliations(path string, names []string) ([]cottype.Affiliation, CompileErrors) {
	var errs CompileErrors
	out := make([]cottype.Affiliation, 0, len(names))
	for i, name := range names {
		aff, ok := cottype.ParseAffiliationName(name)
		if !ok {
			errs = append(errs, &CompileError{
				Path:       fmt.Sprintf("%s.allow[%d]", path, i),
				Message:    fmt.Sprintf("unrecognised affiliation code %q", name),
				Suggestion: "expected one of: pending, unknown, assumedfriend, friend, neutral, suspect, hostile, joker, faker, none, other",
			})
			continue
		}
		out = append(out, aff)
	}
	return out, errs
}

func parseDimensions(path string, names []string) ([]cottype.Dimension, CompileErrors) {
	var errs CompileErrors
	out := make([]cottype.Dimension, 0, len(names))
	for i, name := range names {
		dim, ok := cottype.ParseDimensionName(name)
		if !ok {
			errs = append(errs, &CompileError{
				Path:       fmt.Sprintf("%s.allow[%d]", path, i),
				Message:    fmt.Sprintf("unrecognised dimension code %q", name),
				Suggestion: "expected one of: space, air, ground, sea_surface, sea_subsurface, sof, other, unknown",
			})
			continue
		}
		out = append(out, dim)
	}
	return out, errs
}

func convertValidationError(err error) CompileErrors {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		out := make(CompileErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, &CompileError{
				Path:    fe.Namespace(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return out
	}
	return CompileErrors{{Path: "", Message: err.Error()}}
}
