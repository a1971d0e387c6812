package markup_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/markup"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := markup.NewRegistry()
	registry.MustRegister(markup.NewMarkdown())
	registry.MustRegister(markup.NewNL2BR())

	if diff := cmp.Diff([]string{"markdown", "nl2br"}, registry.List()); diff != "" {
		t.Fatalf("registry list mismatch (-want +got):\n%s", diff)
	}

	renderer, err := registry.Get("markdown")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if renderer.Name() != "markdown" {
		t.Fatalf("Get returned renderer %q", renderer.Name())
	}

	if !registry.Has("nl2br") {
		t.Fatal("Has(nl2br) = false, want true")
	}
	if registry.Has("textile") {
		t.Fatal("Has(textile) = true, want false")
	}
}

func TestRegistryErrors(t *testing.T) {
	registry := markup.NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Fatal("Register(nil) expected error, got none")
	}

	registry.MustRegister(markup.NewNL2BR())
	if err := registry.Register(markup.NewNL2BR()); err == nil {
		t.Fatal("duplicate Register expected error, got none")
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("Get(missing) expected error, got none")
	}
}
