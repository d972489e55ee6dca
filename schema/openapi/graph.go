package openapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	variant "github.com/goliatone/go-variant"
)

// schemaNode is the intermediate form between a tree and the rendered
// document: one node per tree node, carrying only what OpenAPI needs.
type schemaNode struct {
	Type       string
	Format     string
	Properties map[string]*schemaNode
	Required   []string
	Items      *schemaNode
}

func newObjectNode() *schemaNode {
	return &schemaNode{
		Type:       "object",
		Properties: map[string]*schemaNode{},
	}
}

func (n *schemaNode) baseMap() map[string]any {
	result := map[string]any{}
	if n.Type != "" {
		result["type"] = n.Type
	}
	if n.Format != "" {
		result["format"] = n.Format
	}
	return result
}

// inlineOpenAPI renders the node and everything below it without $refs.
func (n *schemaNode) inlineOpenAPI() map[string]any {
	result := n.baseMap()

	if len(n.Properties) > 0 || n.Type == "object" {
		props := make(map[string]any, len(n.Properties))
		names := make([]string, 0, len(n.Properties))
		for name := range n.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			props[name] = n.Properties[name].inlineOpenAPI()
		}
		result["properties"] = props
	}

	if len(n.Required) > 0 {
		names := append([]string{}, n.Required...)
		sort.Strings(names)
		result["required"] = names
	}

	if n.Items != nil {
		result["items"] = n.Items.inlineOpenAPI()
	}

	return result
}

// Digest fingerprints the node's inline rendering so identical shapes can
// share one component entry.
func (n *schemaNode) Digest() string {
	payload := n.inlineOpenAPI()
	data, err := json.Marshal(payload)
	if err != nil {
		// Plain maps and strings marshal without error; an empty digest
		// means the node is never deduplicated.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// buildSchemaGraph converts a tree into schema nodes. Object keys are walked
// in sorted order; a key is required when its entry is non-null, so explicit
// nulls read as optional fields. Arrays describe their elements by the first
// element's shape; empty arrays leave items unconstrained.
func buildSchemaGraph[S variant.Scalar[S]](v *variant.Value[S], kinds map[variant.ScalarKind]ScalarSchema) *schemaNode {
	switch v.Kind() {
	case variant.KindScalar:
		if mapped, ok := kinds[v.ScalarKind()]; ok {
			return &schemaNode{Type: mapped.Type, Format: mapped.Format}
		}
		return &schemaNode{Type: "string", Format: "kind:" + string(v.ScalarKind())}
	case variant.KindArray:
		node := &schemaNode{Type: "array", Items: &schemaNode{}}
		if v.Len() > 0 {
			first, _ := v.Index(0)
			node.Items = buildSchemaGraph(first, kinds)
		}
		return node
	case variant.KindObject:
		node := newObjectNode()
		for _, key := range v.Keys() {
			entry, _ := v.Key(key)
			node.Properties[key] = buildSchemaGraph(entry, kinds)
			if !entry.IsNull() {
				node.Required = append(node.Required, key)
			}
		}
		return node
	default:
		return &schemaNode{Type: "null"}
	}
}
