package query

import (
	"strings"
	"testing"
)

func TestFunctionRegistryRegisterValidation(t *testing.T) {
	registry := NewFunctionRegistry()

	if err := registry.Register("fn", nil); err == nil {
		t.Fatalf("expected nil function to be rejected")
	}
	if err := registry.Register("", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}

	if err := registry.Register("Upper", func(...any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("unexpected error registering Upper: %v", err)
	}
	if err := registry.Register("upper", func(...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate registration to fail case-insensitively")
	} else if !strings.HasPrefix(err.Error(), "query:") {
		t.Fatalf("expected package-prefixed error, got %q", err.Error())
	}
}

func TestFunctionRegistryCallCaseInsensitive(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("Greet", func(args ...any) (any, error) {
		name, _ := args[0].(string)
		return "hello " + name, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"Greet", "greet", "GREET"} {
		result, err := registry.Call(name, "ada")
		if err != nil {
			t.Fatalf("unexpected error calling %q: %v", name, err)
		}
		if result != "hello ada" {
			t.Fatalf("unexpected result %v", result)
		}
	}

	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected unknown function to fail")
	}

	var nilRegistry *FunctionRegistry
	if _, err := nilRegistry.Call("greet"); err == nil {
		t.Fatalf("expected nil registry call to fail")
	}
}

func TestFunctionRegistryNamesSorted(t *testing.T) {
	registry := NewFunctionRegistry()
	for _, name := range []string{"zeta", "Alpha", "mid"} {
		if err := registry.Register(name, func(...any) (any, error) { return nil, nil }); err != nil {
			t.Fatalf("unexpected error registering %q: %v", name, err)
		}
	}

	names := registry.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected names %v, got %v", want, names)
		}
	}
}

func TestFunctionRegistryCloneIsIndependent(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("base", func(...any) (any, error) { return 1, nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clone := registry.Clone()
	if err := clone.Register("extra", func(...any) (any, error) { return 2, nil }); err != nil {
		t.Fatalf("unexpected error registering into clone: %v", err)
	}

	if _, err := clone.Call("base"); err != nil {
		t.Fatalf("expected clone to keep existing functions: %v", err)
	}
	if _, err := registry.Call("extra"); err == nil {
		t.Fatalf("expected original registry to be unaffected by clone")
	}

	var nilRegistry *FunctionRegistry
	if clone := nilRegistry.Clone(); clone != nil {
		t.Fatalf("expected nil registry clone to stay nil, got %v", clone)
	}
}
