// Package routeconfig compiles a YAML or JSON routing document into an
// immutable predicate.Tree and a populated routetable.RouteTable.
//
// A document has three top-level fields: strategy, an optional
// default_destination, and an ordered list of routes, each carrying an
// id, description, priority, a recursive filter tree, and a
// destination list. Struct tags carry both the decode format
// (yaml/json) and go-playground/validator structural constraints;
// decoding happens first (CompileYAML/CompileJSON), then struct-tag
// validation, then recursive filter compilation, which is where
// deeper semantic checks (regex syntax, geo bounds, duplicate
// members, duplicate route ids) surface as path-annotated errors.
package routeconfig
