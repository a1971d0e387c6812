package forms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/forms"
)

func validRegistrationValues() map[string]any {
	return map[string]any{
		"login_name":       "alice_b",
		"email":            "alice@example.com",
		"password":         "correct horse",
		"password_confirm": "correct horse",
		"timezone":         "Europe/Lisbon",
		"agree_terms":      true,
	}
}

func TestValidateRegistrationPasses(t *testing.T) {
	def := forms.Registration().Materialize(nil)

	issues := forms.Validate(def, validRegistrationValues())
	if len(issues) != 0 {
		t.Fatalf("valid submission produced issues: %+v", issues)
	}
}

func TestValidateRegistrationFailures(t *testing.T) {
	def := forms.Registration().Materialize(nil)

	cases := []struct {
		name   string
		mutate func(map[string]any)
		want   forms.Issue
	}{
		{
			name:   "missing required",
			mutate: func(v map[string]any) { delete(v, "email") },
			want:   forms.Issue{Field: "email", Message: "is required"},
		},
		{
			name:   "blank counts as missing",
			mutate: func(v map[string]any) { v["login_name"] = "   " },
			want:   forms.Issue{Field: "login_name", Message: "is required"},
		},
		{
			name:   "too short",
			mutate: func(v map[string]any) { v["password"] = "short"; v["password_confirm"] = "short" },
			want:   forms.Issue{Field: "password", Message: "must be at least 8 characters"},
		},
		{
			name:   "username too long",
			mutate: func(v map[string]any) { v["login_name"] = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" },
			want:   forms.Issue{Field: "login_name", Message: "must be at most 25 characters"},
		},
		{
			name:   "confirmation mismatch",
			mutate: func(v map[string]any) { v["password_confirm"] = "different" },
			want:   forms.Issue{Field: "password_confirm", Message: "must match password"},
		},
		{
			name:   "bad email",
			mutate: func(v map[string]any) { v["email"] = "not-an-address" },
			want:   forms.Issue{Field: "email", Message: "has an invalid format"},
		},
		{
			name:   "terms not boolean",
			mutate: func(v map[string]any) { v["agree_terms"] = "maybe" },
			want:   forms.Issue{Field: "agree_terms", Message: "must be a boolean"},
		},
		{
			name:   "unknown field",
			mutate: func(v map[string]any) { v["admin"] = true },
			want:   forms.Issue{Field: "admin", Message: "is not a known field"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := validRegistrationValues()
			tc.mutate(values)

			issues := forms.Validate(def, values)
			for _, issue := range issues {
				if issue == tc.want {
					return
				}
			}
			t.Fatalf("issues %+v do not include %+v", issues, tc.want)
		})
	}
}

func TestValidateCaptchaOnlyWhenMaterialized(t *testing.T) {
	values := validRegistrationValues()

	withCaptcha := forms.Registration().Materialize(forms.Flags{forms.FlagCaptcha: true})
	issues := forms.Validate(withCaptcha, values)
	if !containsIssue(issues, forms.Issue{Field: "captcha", Message: "is required"}) {
		t.Fatalf("captcha-enabled form should require the captcha field, got %+v", issues)
	}

	withoutCaptcha := forms.Registration().Materialize(nil)
	if issues := forms.Validate(withoutCaptcha, values); len(issues) != 0 {
		t.Fatalf("captcha-disabled form produced issues: %+v", issues)
	}
}

func TestValidateNumericAndEnumRules(t *testing.T) {
	def := forms.Definition{
		ID: "prefs",
		Fields: []forms.Field{
			{
				Name: "per_page",
				Type: forms.FieldTypeInteger,
				Validations: []forms.ValidationRule{
					{Kind: forms.ValidationRuleMin, Params: map[string]string{"value": "10"}},
					{Kind: forms.ValidationRuleMax, Params: map[string]string{"value": "100"}},
				},
			},
			{
				Name: "theme",
				Type: forms.FieldTypeString,
				Enum: []any{"light", "dark"},
			},
		},
	}

	t.Run("in range", func(t *testing.T) {
		issues := forms.Validate(def, map[string]any{"per_page": 25, "theme": "dark"})
		if len(issues) != 0 {
			t.Fatalf("valid values produced issues: %+v", issues)
		}
	})

	t.Run("below minimum", func(t *testing.T) {
		issues := forms.Validate(def, map[string]any{"per_page": 5})
		want := []forms.Issue{{Field: "per_page", Message: "must be at least 10"}}
		if diff := cmp.Diff(want, issues); diff != "" {
			t.Fatalf("issues mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("numeric string accepted", func(t *testing.T) {
		issues := forms.Validate(def, map[string]any{"per_page": "50"})
		if len(issues) != 0 {
			t.Fatalf("numeric string produced issues: %+v", issues)
		}
	})

	t.Run("not an integer", func(t *testing.T) {
		issues := forms.Validate(def, map[string]any{"per_page": 10.5})
		want := []forms.Issue{{Field: "per_page", Message: "must be an integer"}}
		if diff := cmp.Diff(want, issues); diff != "" {
			t.Fatalf("issues mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("enum rejected", func(t *testing.T) {
		issues := forms.Validate(def, map[string]any{"theme": "sepia"})
		want := []forms.Issue{{Field: "theme", Message: "is not an allowed value"}}
		if diff := cmp.Diff(want, issues); diff != "" {
			t.Fatalf("issues mismatch (-want +got):\n%s", diff)
		}
	})
}

func containsIssue(issues []forms.Issue, want forms.Issue) bool {
	for _, issue := range issues {
		if issue == want {
			return true
		}
	}
	return false
}
