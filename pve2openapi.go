// Package pve2openapi converts the Proxmox VE API viewer tree (apidoc.js)
// into an OpenAPI 3 document. The conversion is a pure, one-shot, in-memory
// transformation: the whole tree is decoded, walked once, and assembled into
// a single document.
package pve2openapi

import (
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/pvetools/pve2openapi/internal/assembler"
	"github.com/pvetools/pve2openapi/internal/config"
	"github.com/pvetools/pve2openapi/internal/schema"
	"github.com/pvetools/pve2openapi/internal/walker"
)

// Result holds the assembled document and its summary counts.
type Result struct {
	Document *openapi3.T
	Stats    assembler.Stats
}

// Convert transforms apidoc.js source bytes into an OpenAPI document. A nil
// cfg uses the defaults. The only error condition is an unusable input: a
// missing source variable or an undecodable literal. Shape irregularities
// inside the tree never fail; they degrade to documented defaults.
func Convert(src []byte, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	nodes, err := schema.Decode(src, cfg.SourceVariable)
	if err != nil {
		return nil, err
	}
	doc, stats := assembler.BuildSpec(walker.Walk(nodes), cfg)
	return &Result{Document: doc, Stats: stats}, nil
}

// ConvertFile reads and converts an apidoc.js file.
func ConvertFile(path string, cfg *config.Config) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Convert(src, cfg)
}

// Marshal serializes a converted document as indented JSON or YAML.
func (r *Result) Marshal(format string) ([]byte, error) {
	return assembler.Marshal(r.Document, format)
}
