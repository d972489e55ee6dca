// Package openapi renders variant trees as OpenAPI 3 documents. The tree's
// shape becomes the request schema of a configurable operation: objects map
// to object schemas whose non-null entries are required, arrays take their
// element schema from the first element, and scalar kinds map through a
// configurable vocabulary table. Repeated container shapes are deduplicated
// under components/schemas.
package openapi

import (
	"fmt"
	"sort"

	variant "github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/basic"
)

// Generator derives OpenAPI documents from the shape of variant trees.
// A Generator is immutable after construction and safe for concurrent use.
type Generator[S variant.Scalar[S]] struct {
	config generatorConfig
}

var _ variant.SchemaGenerator[basic.Scalar] = (*Generator[basic.Scalar])(nil)

// New constructs a generator. Without options it targets OpenAPI 3.0.3 with
// a lone POST /records operation and the basic scalar vocabulary.
func New[S variant.Scalar[S]](opts ...GeneratorOption) *Generator[S] {
	cfg := defaultGeneratorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Generator[S]{config: cfg}
}

// Generate builds a complete OpenAPI document whose request body schema
// describes the tree. A nil tree describes a null payload.
func (g *Generator[S]) Generate(v *variant.Value[S]) (variant.SchemaDocument, error) {
	root := buildSchemaGraph(v, g.config.scalars)
	registry := newComponentRegistry()
	document, err := newDocumentBuilder(g.config, registry, root).build()
	if err != nil {
		return variant.SchemaDocument{}, err
	}
	return variant.SchemaDocument{
		Format:   variant.SchemaFormatOpenAPI,
		Document: document,
	}, nil
}

// Components renders one named inline schema per tree, keyed by sanitized
// name. Callers typically feed it registry snapshots, one entry per model
// kind, to document a whole deployment in a single components block.
func (g *Generator[S]) Components(trees map[string]*variant.Value[S]) (map[string]any, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("openapi: at least one tree is required")
	}

	names := make([]string, 0, len(trees))
	for name := range trees {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := newComponentRegistry()
	out := make(map[string]any, len(trees))
	for _, name := range names {
		node := buildSchemaGraph(trees[name], g.config.scalars)
		out[registry.uniqueName(name)] = node.inlineOpenAPI()
	}
	return out, nil
}
