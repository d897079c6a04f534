// Package convert turns one source node's per-method metadata into OpenAPI
// operations. It is permissive throughout: missing descriptors are skipped and
// missing sub-fields degrade to defaults, never to an error.
package convert

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pvetools/pve2openapi/internal/schema"
)

// Methods lists the recognized HTTP methods in the order operations are
// emitted. Methods absent from a node's info block are skipped; unrecognized
// keys contribute nothing.
var Methods = []string{"GET", "POST", "PUT", "DELETE"}

// Operations converts the info block of a node at the given derived path into
// one OpenAPI operation per recognized method present.
func Operations(info schema.MethodMap, path string) map[string]*openapi3.Operation {
	ops := make(map[string]*openapi3.Operation, len(info))
	for _, method := range Methods {
		m, ok := info[method]
		if !ok || m == nil {
			continue
		}
		ops[method] = operation(method, path, m)
	}
	return ops
}

func operation(method, path string, m *schema.Method) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = m.Name
	op.Description = describe(m)
	op.OperationID = operationID(method, path)
	op.Tags = []string{tagFor(path)}

	props := m.Props()
	pathVars := PathVariables(path)
	inPath := make(map[string]bool, len(pathVars))

	// Every bracketed segment becomes a required path parameter, whether or
	// not the parameter bag declares it; a declared entry contributes its
	// schema and description.
	for _, name := range pathVars {
		inPath[name] = true
		param := openapi3.NewPathParameter(name).WithSchema(parameterSchema(props[name]))
		if p := props[name]; p != nil {
			param.Description = p.Description
		}
		op.AddParameter(param)
	}

	rest := make([]string, 0, len(props))
	for name := range props {
		if !inPath[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	switch method {
	case "POST", "PUT":
		if body := bodySchema(rest, props); len(body.Properties) > 0 {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithJSONSchema(body),
			}
		}
	default:
		for _, name := range rest {
			p := props[name]
			param := openapi3.NewQueryParameter(name).WithSchema(parameterSchema(p))
			if p != nil {
				param.Description = p.Description
				param.Required = !bool(p.Optional)
			} else {
				param.Required = true
			}
			op.AddParameter(param)
		}
	}

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: responseFor(m.Returns)}),
	)
	return op
}

// bodySchema builds the request body object from every non-path parameter.
// Properties not flagged optional land on the required list.
func bodySchema(names []string, props map[string]*schema.Param) *openapi3.Schema {
	body := openapi3.NewObjectSchema()
	for _, name := range names {
		p := props[name]
		body = body.WithProperty(name, parameterSchema(p))
		if p == nil || !bool(p.Optional) {
			body.Required = append(body.Required, name)
		}
	}
	return body
}

// describe joins the method description with its permissions note, which has
// no dedicated field in the target format.
func describe(m *schema.Method) string {
	desc := m.Description
	if m.Permissions != nil && m.Permissions.Description != "" {
		if desc != "" {
			desc += "\n\n"
		}
		desc += "Permissions: " + m.Permissions.Description
	}
	return desc
}

// operationID derives a unique, URL-safe identifier from method and path by
// lowercasing the method and replacing every non-alphanumeric path character
// with an underscore.
func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// tagFor groups operations under the first non-empty path segment, or "root"
// for the root path.
func tagFor(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return "root"
}

// PathVariables extracts the bracketed variable names from a path, in order
// of appearance, without duplicates.
func PathVariables(path string) []string {
	var names []string
	seen := make(map[string]bool)
	for {
		i := strings.IndexByte(path, '{')
		if i < 0 {
			return names
		}
		j := strings.IndexByte(path[i:], '}')
		if j < 0 {
			return names
		}
		name := path[i+1 : i+j]
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		path = path[i+j+1:]
	}
}
