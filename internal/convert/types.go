package convert

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pvetools/pve2openapi/internal/schema"
)

// typeTable maps source primitive tags to OpenAPI type names. The source's
// explicit "null" primitive has no OpenAPI equivalent and is approximated as
// string; this is a documented limitation of the translation.
var typeTable = map[string]string{
	"string":  "string",
	"boolean": "boolean",
	"integer": "integer",
	"number":  "number",
	"array":   "array",
	"object":  "object",
	"null":    "string",
}

// MapType translates a source primitive type tag into the OpenAPI type
// vocabulary. Unrecognized tags map to string rather than failing.
func MapType(tag string) string {
	if t, ok := typeTable[tag]; ok {
		return t
	}
	return "string"
}

// typeSchema builds a bare schema for an OpenAPI type name.
func typeSchema(name string) *openapi3.Schema {
	switch name {
	case "boolean":
		return openapi3.NewBoolSchema()
	case "integer":
		return openapi3.NewIntegerSchema()
	case "number":
		return openapi3.NewFloat64Schema()
	case "array":
		return openapi3.NewArraySchema()
	case "object":
		return openapi3.NewObjectSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

// parameterSchema translates one parameter descriptor into a schema carrying
// type, description, default, enum, bounds, pattern and format. A nil
// descriptor yields a plain string schema.
func parameterSchema(p *schema.Param) *openapi3.Schema {
	if p == nil {
		return openapi3.NewStringSchema()
	}
	s := typeSchema(MapType(p.Type))
	s.Description = p.Description
	if p.Default != nil {
		s.Default = p.Default
	}
	if len(p.Enum) > 0 {
		s.Enum = p.Enum
	}
	if p.Minimum.Valid {
		v := p.Minimum.Value
		s.Min = &v
	}
	if p.Maximum.Valid {
		v := p.Maximum.Value
		s.Max = &v
	}
	if p.Pattern != "" {
		s.Pattern = p.Pattern
	}
	if p.Format != "" {
		s.Format = string(p.Format)
	}
	return s
}

// responseFor synthesizes the single 200 response for a method. Without a
// return descriptor the response carries a description only; otherwise the
// payload is wrapped in the API's data envelope.
func responseFor(ret *schema.Returns) *openapi3.Response {
	resp := openapi3.NewResponse().WithDescription("Successful response")
	if ret == nil {
		return resp
	}
	envelope := openapi3.NewObjectSchema().WithProperty("data", returnSchema(ret))
	return resp.WithJSONSchema(envelope)
}

// returnSchema translates a return descriptor into the payload schema.
// Object properties are expanded one level only; nested structures inside a
// property are represented by their mapped primitive type.
func returnSchema(ret *schema.Returns) *openapi3.Schema {
	switch ret.Type {
	case "null":
		s := openapi3.NewObjectSchema()
		s.Nullable = true
		return s
	case "array":
		arr := openapi3.NewArraySchema()
		if ret.Items != nil {
			return arr.WithItems(typeSchema(MapType(ret.Items.Type)))
		}
		return arr.WithItems(openapi3.NewObjectSchema())
	case "object":
		obj := openapi3.NewObjectSchema()
		for _, name := range sortedKeys(ret.Properties) {
			ps := openapi3.NewStringSchema()
			if p := ret.Properties[name]; p != nil {
				ps = typeSchema(MapType(p.Type))
				ps.Description = p.Description
			}
			obj = obj.WithProperty(name, ps)
		}
		return obj
	default:
		return typeSchema(MapType(ret.Type))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
