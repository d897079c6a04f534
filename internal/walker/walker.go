// Package walker derives one normalized URL path per source node and collects
// the operations declared along the tree.
package walker

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/pvetools/pve2openapi/internal/convert"
	"github.com/pvetools/pve2openapi/internal/schema"
)

// Entry is one converted operation at its derived path. Entries preserve tree
// order; merging into the output document (including last-write-wins on a
// duplicate method and path) is the caller's job.
type Entry struct {
	Path   string
	Method string
	Op     *openapi3.Operation
}

// Walk descends the source tree from the root nodes and returns every
// operation it finds. The walk is pure; it holds no state beyond the
// accumulated entries.
func Walk(nodes []*schema.Node) []Entry {
	var entries []Entry
	walk(nodes, "", &entries)
	return entries
}

func walk(nodes []*schema.Node, parent string, out *[]Entry) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		current := parent
		if seg := n.Segment(); seg != "" {
			current = parent + "/" + seg
		}
		current = normalize(current)
		if len(n.Info) > 0 {
			ops := convert.Operations(n.Info, current)
			for _, method := range convert.Methods {
				if op, ok := ops[method]; ok {
					*out = append(*out, Entry{Path: current, Method: method, Op: op})
				}
			}
		}
		if len(n.Children) > 0 {
			walk(n.Children, current, out)
		}
	}
}

// normalize collapses repeated slashes and roots an empty path at "/".
func normalize(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if path == "" {
		return "/"
	}
	return path
}
