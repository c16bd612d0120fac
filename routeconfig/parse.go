package routeconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tak-mesh/cot-router/routetable"
)

// CompileYAML decodes and compiles a YAML routing document.
func CompileYAML(data []byte) (*routetable.RouteTable, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, CompileErrors{{Path: "", Message: fmt.Sprintf("yaml syntax error: %s", err)}}
	}
	return NewCompiler().Compile(&doc)
}

// CompileJSON decodes and compiles a JSON routing document.
func CompileJSON(data []byte) (*routetable.RouteTable, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, CompileErrors{{Path: "", Message: fmt.Sprintf("json syntax error: %s", err)}}
	}
	return NewCompiler().Compile(&doc)
}

// CompileFile reads path and compiles it, dispatching on the file
// extension (.yaml/.yml for YAML, .json for JSON).
func CompileFile(path string) (*routetable.RouteTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routeconfig: reading %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".json":
		return CompileJSON(data)
	case ".yaml", ".yml":
		return CompileYAML(data)
	default:
		return nil, fmt.Errorf("routeconfig: %s: unrecognised extension (want .yaml, .yml, or .json)", path)
	}
}
