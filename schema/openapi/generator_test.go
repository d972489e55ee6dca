package openapi

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	variant "github.com/goliatone/go-variant"
	"github.com/goliatone/go-variant/basic"
	"github.com/goliatone/go-variant/internal/treetest"
)

func TestNewGeneratorOptions(t *testing.T) {
	custom := New[basic.Scalar](
		WithOpenAPIVersion("3.1.0"),
		WithInfo("Custom Service", "2.0.0", WithInfoDescription("custom schema")),
		WithOperation("/settings", "PUT", "updateSettings", WithOperationSummary("Update settings")),
		WithContentType("application/x-www-form-urlencoded"),
		WithResponse("201", "Created"),
		WithScalarSchema(basic.KindTime, ScalarSchema{Type: "integer", Format: "unix"}),
	)

	if got := custom.config.openAPIVersion; got != "3.1.0" {
		t.Fatalf("expected openapi version 3.1.0, got %q", got)
	}
	if got := custom.config.info.Title; got != "Custom Service" {
		t.Fatalf("expected info title Custom Service, got %q", got)
	}
	if got := custom.config.info.Version; got != "2.0.0" {
		t.Fatalf("expected info version 2.0.0, got %q", got)
	}
	if got := custom.config.info.Description; got != "custom schema" {
		t.Fatalf("expected info description custom schema, got %q", got)
	}
	if got := custom.config.operation.Path; got != "/settings" {
		t.Fatalf("expected operation path /settings, got %q", got)
	}
	if got := custom.config.operation.Method; got != "put" {
		t.Fatalf("expected method put, got %q", got)
	}
	if got := custom.config.operation.OperationID; got != "updateSettings" {
		t.Fatalf("expected operation id updateSettings, got %q", got)
	}
	if got := custom.config.operation.Summary; got != "Update settings" {
		t.Fatalf("expected operation summary Update settings, got %q", got)
	}
	if got := custom.config.contentType; got != "application/x-www-form-urlencoded" {
		t.Fatalf("expected content type application/x-www-form-urlencoded, got %q", got)
	}
	if got := custom.config.responses["201"].Description; got != "Created" {
		t.Fatalf("expected response description Created, got %q", got)
	}
	if _, exists := custom.config.responses["204"]; !exists {
		t.Fatalf("expected default 204 response to remain configured")
	}
	if got := custom.config.scalars[basic.KindTime]; got != (ScalarSchema{Type: "integer", Format: "unix"}) {
		t.Fatalf("expected overridden time schema, got %+v", got)
	}
	if got := custom.config.scalars[basic.KindString]; got != (ScalarSchema{Type: "string"}) {
		t.Fatalf("expected default string schema to remain, got %+v", got)
	}
}

func TestGeneratorFixtures(t *testing.T) {
	t.Parallel()

	cases := []string{
		"document_minimal.json",
		"document_nested.json",
		"document_arrays.json",
		"document_components.json",
		"document_nullable.json",
	}

	for _, name := range cases {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fx := loadFixture(t, name)
			input := fx.tree(t)

			generator := New[basic.Scalar]()
			doc, err := generator.Generate(input)
			if err != nil {
				t.Fatalf("Generate returned error: %v", err)
			}
			if doc.Format != variant.SchemaFormatOpenAPI {
				t.Fatalf("expected format %q, got %q", variant.SchemaFormatOpenAPI, doc.Format)
			}

			got, ok := doc.Document.(map[string]any)
			if !ok {
				t.Fatalf("expected schema document map[string]any, got %T", doc.Document)
			}
			assertJSONEqual(t, fx.Expect.Document, got)

			if err := validateDocument(got); err != nil {
				t.Fatalf("document %s failed validation: %v", name, err)
			}
		})
	}
}

func TestGeneratorNil(t *testing.T) {
	t.Parallel()

	generator := New[basic.Scalar]()

	doc, err := generator.Generate(nil)
	if err != nil {
		t.Fatalf("Generate(nil) returned error: %v", err)
	}
	if doc.Format != variant.SchemaFormatOpenAPI {
		t.Fatalf("expected format %q, got %q", variant.SchemaFormatOpenAPI, doc.Format)
	}
	document, ok := doc.Document.(map[string]any)
	if !ok {
		t.Fatalf("expected map document, got %T", doc.Document)
	}
	if err := validateDocument(document); err != nil {
		t.Fatalf("nil tree produced invalid document: %v", err)
	}
	schema := requestSchema(t, document, "/records", "post")
	if schema["type"] != "null" {
		t.Fatalf("expected null request schema, got %v", schema)
	}
}

func TestGeneratorRootComponent(t *testing.T) {
	t.Parallel()

	generator := New[basic.Scalar](WithRootComponent("Snapshot"))
	tree := basic.Object(map[string]*basic.Value{
		"a": basic.Object(map[string]*basic.Value{"x": basic.Int(1)}),
		"b": basic.Object(map[string]*basic.Value{"x": basic.Int(2)}),
	})

	doc, err := generator.Generate(tree)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	document := doc.Document.(map[string]any)

	schema := requestSchema(t, document, "/records", "post")
	if ref, _ := schema["$ref"].(string); ref != "#/components/schemas/Snapshot" {
		t.Fatalf("expected root $ref, got %v", schema)
	}

	schemas := componentSchemas(t, document)
	root, ok := schemas["Snapshot"].(map[string]any)
	if !ok {
		t.Fatalf("expected Snapshot component, got %v", schemas)
	}
	if root["type"] != "object" {
		t.Fatalf("expected object root component, got %v", root)
	}
	// a and b share one shape, so the descendant walk publishes it once.
	shared, ok := schemas["Snapshot_a"].(map[string]any)
	if !ok {
		t.Fatalf("expected shared child component, got %v", schemas)
	}
	if shared["type"] != "object" {
		t.Fatalf("unexpected shared component %v", shared)
	}
}

func TestGeneratorComponents(t *testing.T) {
	t.Parallel()

	generator := New[basic.Scalar]()
	components, err := generator.Components(map[string]*basic.Value{
		"player": basic.Object(map[string]*basic.Value{
			"name":  basic.String("ada"),
			"score": basic.Int(10),
		}),
		"npc": basic.Object(map[string]*basic.Value{
			"name": basic.String("bea"),
		}),
	})
	if err != nil {
		t.Fatalf("Components returned error: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("expected two components, got %v", components)
	}
	player, ok := components["player"].(map[string]any)
	if !ok {
		t.Fatalf("expected player component, got %v", components)
	}
	props := player["properties"].(map[string]any)
	if _, exists := props["score"]; !exists {
		t.Fatalf("expected player score property, got %v", props)
	}
	if _, exists := components["npc"]; !exists {
		t.Fatalf("expected npc component, got %v", components)
	}

	if _, err := generator.Components(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestGeneratorConcurrentAccess(t *testing.T) {
	t.Parallel()

	generator := New[basic.Scalar]()
	input := basic.Object(map[string]*basic.Value{
		"service": basic.Object(map[string]*basic.Value{
			"name":    basic.String("api"),
			"enabled": basic.Bool(true),
		}),
	})

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			doc, err := generator.Generate(input)
			if err != nil {
				t.Errorf("Generate returned error: %v", err)
				return
			}
			if doc.Document == nil {
				t.Errorf("expected document payload")
			}
		}()
	}
	wg.Wait()
}

type fixture struct {
	Tree   json.RawMessage `json:"tree"`
	Expect struct {
		Document map[string]any `json:"document"`
	} `json:"expect"`
}

func (fx fixture) tree(t *testing.T) *basic.Value {
	t.Helper()

	if len(fx.Tree) == 0 {
		return nil
	}
	tree, err := treetest.FromYAML(fx.Tree)
	if err != nil {
		t.Fatalf("decode fixture tree: %v", err)
	}
	return tree
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()

	path := filepath.Join("testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %q: %v", path, err)
	}

	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("unmarshal fixture %q: %v", path, err)
	}
	return fx
}

func requestSchema(t *testing.T, document map[string]any, path, method string) map[string]any {
	t.Helper()

	paths, ok := document["paths"].(map[string]any)
	if !ok {
		t.Fatalf("expected paths map, got %T", document["paths"])
	}
	pathItem, ok := paths[path].(map[string]any)
	if !ok {
		t.Fatalf("expected %s path map, got %T", path, paths[path])
	}
	operation, ok := pathItem[method].(map[string]any)
	if !ok {
		t.Fatalf("expected %s operation map, got %T", method, pathItem[method])
	}
	requestBody, ok := operation["requestBody"].(map[string]any)
	if !ok {
		t.Fatalf("expected requestBody map, got %T", operation["requestBody"])
	}
	content, ok := requestBody["content"].(map[string]any)
	if !ok {
		t.Fatalf("expected content map, got %T", requestBody["content"])
	}
	media, ok := content["application/json"].(map[string]any)
	if !ok {
		t.Fatalf("expected application/json content, got %T", content["application/json"])
	}
	schema, ok := media["schema"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema map, got %T", media["schema"])
	}
	return schema
}

func componentSchemas(t *testing.T, document map[string]any) map[string]any {
	t.Helper()

	components, ok := document["components"].(map[string]any)
	if !ok {
		t.Fatalf("expected components map, got %T", document["components"])
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		t.Fatalf("expected schemas map, got %T", components["schemas"])
	}
	return schemas
}

func assertJSONEqual(t *testing.T, want, got map[string]any) {
	t.Helper()

	wantBytes := mustMarshal(t, want)
	gotBytes := mustMarshal(t, got)

	if !bytes.Equal(wantBytes, gotBytes) {
		t.Fatalf("schema mismatch\nwant: %s\ngot:  %s", wantBytes, gotBytes)
	}
}

func mustMarshal(t *testing.T, value any) []byte {
	t.Helper()

	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	return raw
}
