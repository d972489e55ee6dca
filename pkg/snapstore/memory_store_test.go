package snapstore_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-variant/basic"
	"github.com/goliatone/go-variant/pkg/snapstore"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := snapstore.NewMemoryStore[basic.Scalar]()
	ctx := context.Background()
	ref := snapstore.Ref{Kind: "player", ID: "p-1"}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}

	tree := basic.Object(map[string]*basic.Value{"name": basic.String("ada")})
	meta, err := store.Save(ctx, ref, tree, snapstore.Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if meta.SnapshotID == "" || meta.ETag == "" || meta.UpdatedAt.IsZero() {
		t.Fatalf("expected stamped metadata, got %+v", meta)
	}

	loaded, loadedMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !loaded.Equal(tree) {
		t.Fatalf("expected %s, got %s", tree, loaded)
	}
	if loadedMeta.ETag != meta.ETag || loadedMeta.SnapshotID != meta.SnapshotID {
		t.Fatalf("load must return the saved metadata, got %+v", loadedMeta)
	}

	second, err := store.Save(ctx, ref, tree, loadedMeta)
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if second.ETag == meta.ETag {
		t.Fatal("etag must advance on every save")
	}
	if second.SnapshotID != meta.SnapshotID {
		t.Fatalf("snapshot id should be stable once minted: %q then %q", meta.SnapshotID, second.SnapshotID)
	}
}

func TestMemoryStoreDetachesTrees(t *testing.T) {
	store := snapstore.NewMemoryStore[basic.Scalar]()
	ctx := context.Background()
	ref := snapstore.Ref{Kind: "player", ID: "p-1"}

	tree := basic.Object(map[string]*basic.Value{"name": basic.String("ada")})
	if _, err := store.Save(ctx, ref, tree, snapstore.Meta{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := tree.Set("name", basic.String("grace")); err != nil {
		t.Fatalf("set: %v", err)
	}

	loaded, _, _, err := store.Load(ctx, ref)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name := mustString(t, loaded, "name"); name != "ada" {
		t.Fatalf("store must not alias the saved tree, got %q", name)
	}

	if err := loaded.Set("name", basic.String("lin")); err != nil {
		t.Fatalf("set: %v", err)
	}
	again, _, _, err := store.Load(ctx, ref)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name := mustString(t, again, "name"); name != "ada" {
		t.Fatalf("loads must not alias each other, got %q", name)
	}
}

func TestMemoryStoreDetachesMetaExtra(t *testing.T) {
	store := snapstore.NewMemoryStore[basic.Scalar]()
	ctx := context.Background()
	ref := snapstore.Ref{Kind: "player"}

	extra := map[string]string{"source": "import"}
	if _, err := store.Save(ctx, ref, basic.Object(nil), snapstore.Meta{Extra: extra}); err != nil {
		t.Fatalf("save: %v", err)
	}
	extra["source"] = "tampered"

	_, meta, _, err := store.Load(ctx, ref)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Extra["source"] != "import" {
		t.Fatalf("store must not alias caller metadata, got %q", meta.Extra["source"])
	}
}

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name string
		ref  snapstore.Ref
		want string
		ok   bool
	}{
		{"kind only", snapstore.Ref{Kind: "player"}, "player", true},
		{"kind and id", snapstore.Ref{Kind: "player", ID: "p-1"}, "player/p-1", true},
		{"trims whitespace", snapstore.Ref{Kind: " player ", ID: " p-1 "}, "player/p-1", true},
		{"missing kind", snapstore.Ref{ID: "p-1"}, "", false},
		{"slash in kind", snapstore.Ref{Kind: "a/b"}, "", false},
	}
	for _, tc := range cases {
		got, err := tc.ref.Identifier()
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%s: expected %q, got %q (err=%v)", tc.name, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func mustString(t *testing.T, tree *basic.Value, path ...string) string {
	t.Helper()
	node, ok := tree.At(path...)
	if !ok {
		t.Fatalf("missing %v in %s", path, tree)
	}
	s, err := basic.StringValue(node)
	if err != nil {
		t.Fatalf("%v: %v", path, err)
	}
	return s
}
