// Package assembler builds the final OpenAPI document from the walked
// operation entries and the configured metadata.
package assembler

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/pvetools/pve2openapi/internal/config"
	"github.com/pvetools/pve2openapi/internal/walker"
)

// Stats summarizes the assembled document for the post-conversion report.
type Stats struct {
	// Paths is the number of distinct derived paths.
	Paths int
	// Operations is the total operation count across all paths and methods.
	Operations int
}

// BuildSpec constructs the output document. Entries merge in order: a path
// item is created on first sight and later entries for the same method and
// path overwrite earlier ones.
func BuildSpec(entries []walker.Entry, cfg *config.Config) (*openapi3.T, Stats) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    cfg.Info,
		Servers: openapi3.Servers{
			{
				URL: cfg.ServerURL,
				Variables: map[string]*openapi3.ServerVariable{
					"host": {Default: cfg.HostDefault},
				},
			},
		},
		Paths: &openapi3.Paths{},
		Components: &openapi3.Components{
			SecuritySchemes: securitySchemes(),
		},
		// Two entries mean either scheme authenticates a request.
		Security: openapi3.SecurityRequirements{
			{"ApiToken": {}},
			{"Cookie": {}},
		},
	}

	for _, e := range entries {
		item := doc.Paths.Find(e.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(e.Path, item)
		}
		item.SetOperation(e.Method, e.Op)
	}

	stats := Stats{Paths: doc.Paths.Len()}
	for _, item := range doc.Paths.Map() {
		stats.Operations += len(item.Operations())
	}
	return doc, stats
}

func securitySchemes() openapi3.SecuritySchemes {
	return openapi3.SecuritySchemes{
		"ApiToken": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:        "apiKey",
				In:          "header",
				Name:        "Authorization",
				Description: "API token of the form 'PVEAPIToken=USER@REALM!TOKENID=UUID'.",
			},
		},
		"Cookie": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:        "apiKey",
				In:          "cookie",
				Name:        "PVEAuthCookie",
				Description: "Ticket cookie obtained from the access/ticket endpoint.",
			},
		},
	}
}

// Marshal serializes the document as indented JSON or YAML. Paths come out
// sorted lexicographically in either format, so serialization of the same
// document is byte-identical across runs.
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		// doc.MarshalYAML yields plain maps and yaml.v3 encodes map keys in
		// sorted order, which keeps the sorted-paths guarantee.
		node, err := doc.MarshalYAML()
		if err != nil {
			return nil, fmt.Errorf("marshaling document: %w", err)
		}
		return yaml.Marshal(node)
	case "json", "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling document: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
