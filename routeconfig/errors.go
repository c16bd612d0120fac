package routeconfig

import "fmt"

// CompileError is a single compilation failure, annotated with the
// document path to the offending node (e.g.
// "routes[2].filter.filters[1].regex") so a config author can find
// the mistake without re-reading the whole document.
type CompileError struct {
	Path       string
	Message    string
	Suggestion string
}

func (e *CompileError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Suggestion)
}

// CompileErrors collects every CompileError found while compiling a
// document. Compilation does not stop at the first error: every route
// and filter node is checked so an author sees the full list of
// mistakes in one pass.
type CompileErrors []*CompileError

func (es CompileErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msg := fmt.Sprintf("%d compile errors:", len(es))
	for _, e := range es {
		msg += "\n  - " + e.Error()
	}
	return msg
}
