// Package schema defines the shape of the Proxmox VE apidoc source tree and a
// tolerant decoder for it. Field absence or a field of an unexpected JSON type
// never fails decoding; every irregularity degrades to a documented default.
package schema

import "encoding/json"

// Node is one element of the source API tree. A node may name a path segment,
// carry per-method endpoint metadata, nest children, or any combination.
type Node struct {
	Path     string    `json:"path"`
	Text     string    `json:"text"`
	Children []*Node   `json:"children"`
	Info     MethodMap `json:"info"`
}

// Segment returns the path segment this node contributes, preferring the
// explicit path field over the display text. Empty means the node contributes
// no segment and its children inherit the parent path unchanged.
func (n *Node) Segment() string {
	if n.Path != "" {
		return n.Path
	}
	return n.Text
}

// MethodMap maps an HTTP method name (as spelled in the source, e.g. "GET")
// to its endpoint metadata.
type MethodMap map[string]*Method

// Method is the per-HTTP-method metadata block of a node.
type Method struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parameters  *Params      `json:"parameters"`
	Returns     *Returns     `json:"returns"`
	Permissions *Permissions `json:"permissions"`
}

// Props returns the parameter bag of the method, nil-safe.
func (m *Method) Props() map[string]*Param {
	if m == nil || m.Parameters == nil {
		return nil
	}
	return m.Parameters.Properties
}

// Permissions carries free-text authorization requirements.
type Permissions struct {
	Description string `json:"description"`
}

// Params is the parameter bag accepted by one method.
type Params struct {
	Properties map[string]*Param `json:"properties"`
}

// Param describes a single named parameter. Only Type is expected to be
// present; everything else is optional and loosely typed in the source.
type Param struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Optional    Flag        `json:"optional"`
	Default     any         `json:"default"`
	Enum        Enum        `json:"enum"`
	Minimum     Number      `json:"minimum"`
	Maximum     Number      `json:"maximum"`
	Pattern     string      `json:"pattern"`
	Format      LooseString `json:"format"`
}

// Returns describes a method's return value. Items applies when Type is
// "array", Properties when Type is "object".
type Returns struct {
	Type       string            `json:"type"`
	Items      *Returns          `json:"items"`
	Properties map[string]*Param `json:"properties"`
}

// Flag is a loosely typed optionality marker. Only the exact value 1 marks a
// parameter as not required; absence or any other value means required.
type Flag bool

// UnmarshalJSON never fails; unrecognized values decode as false.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n.String() == "1"
	}
	return nil
}

// Number is a numeric field that may be absent or spelled as a string in the
// source. Valid reports whether a usable value was present.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never fails; non-numeric values decode as absent.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Float64(); err == nil {
			*n = Number{Value: v, Valid: true}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var v float64
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			*n = Number{Value: v, Valid: true}
		}
	}
	return nil
}

// Enum is the set of allowed values for a parameter. A non-array enum field
// is tolerated and treated as absent.
type Enum []any

// UnmarshalJSON never fails; a non-array value decodes as an empty set.
func (e *Enum) UnmarshalJSON(data []byte) error {
	*e = nil
	var vals []any
	if err := json.Unmarshal(data, &vals); err == nil {
		*e = vals
	}
	return nil
}

// LooseString is a string field that may hold a non-string value in the
// source (Proxmox format descriptors are sometimes objects); anything but a
// string decodes as empty.
type LooseString string

// UnmarshalJSON never fails.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	*s = ""
	var v string
	if err := json.Unmarshal(data, &v); err == nil {
		*s = LooseString(v)
	}
	return nil
}
