package forms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/forms"
)

func TestMaterializeConditionalFields(t *testing.T) {
	def := forms.Definition{
		ID: "sample",
		Fields: []forms.Field{
			{Name: "always", Type: forms.FieldTypeString},
			{Name: "gated", Type: forms.FieldTypeString, Condition: "captcha"},
			{Name: "inverted", Type: forms.FieldTypeString, Condition: "!captcha"},
		},
	}

	t.Run("flag on", func(t *testing.T) {
		got := def.Materialize(forms.Flags{"captcha": true})
		want := []string{"always", "gated"}
		if diff := cmp.Diff(want, fieldNames(got)); diff != "" {
			t.Fatalf("materialised fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("flag off", func(t *testing.T) {
		got := def.Materialize(nil)
		want := []string{"always", "inverted"}
		if diff := cmp.Diff(want, fieldNames(got)); diff != "" {
			t.Fatalf("materialised fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("conditions cleared", func(t *testing.T) {
		got := def.Materialize(forms.Flags{"captcha": true})
		for _, field := range got.Fields {
			if field.Condition != "" {
				t.Fatalf("field %q kept condition %q after materialise", field.Name, field.Condition)
			}
		}
	})

	t.Run("receiver untouched", func(t *testing.T) {
		def.Materialize(forms.Flags{"captcha": true})
		if len(def.Fields) != 3 {
			t.Fatalf("source definition mutated, %d fields", len(def.Fields))
		}
	})
}

func TestFieldByName(t *testing.T) {
	def := forms.Registration()

	field, ok := def.FieldByName("email")
	if !ok {
		t.Fatal("FieldByName(email) not found")
	}
	if field.Format != "email" {
		t.Fatalf("email field format = %q", field.Format)
	}

	if _, ok := def.FieldByName("missing"); ok {
		t.Fatal("FieldByName(missing) unexpectedly found")
	}
}

func fieldNames(def forms.Definition) []string {
	names := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		names = append(names, field.Name)
	}
	return names
}
