package forms

// FlagCaptcha gates the captcha challenge on the registration form.
const FlagCaptcha = "captcha"

// Registration returns the built-in user-registration definition. Callers
// materialise it against their feature flags, typically toggling the
// captcha field, then validate submissions with Validate.
func Registration() Definition {
	return Definition{
		ID:     "user.register",
		Title:  "Register",
		Action: "/register",
		Method: "POST",
		Fields: []Field{
			{
				Name:     "login_name",
				Type:     FieldTypeString,
				Required: true,
				Label:    "Username",
				Validations: []ValidationRule{
					{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
					{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "25"}},
					{Kind: ValidationRulePattern, Params: map[string]string{"pattern": `^[A-Za-z0-9_.-]+$`}},
				},
			},
			{
				Name:     "email",
				Type:     FieldTypeString,
				Format:   "email",
				Required: true,
				Label:    "Email address",
				Validations: []ValidationRule{
					{Kind: ValidationRulePattern, Params: map[string]string{"pattern": `^[^@\s]+@[^@\s]+\.[^@\s]+$`}},
				},
			},
			{
				Name:     "password",
				Type:     FieldTypeString,
				Format:   "password",
				Required: true,
				Label:    "Password",
				Validations: []ValidationRule{
					{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "8"}},
					{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "255"}},
				},
			},
			{
				Name:     "password_confirm",
				Type:     FieldTypeString,
				Format:   "password",
				Required: true,
				Label:    "Confirm password",
				Validations: []ValidationRule{
					{Kind: ValidationRuleMatch, Params: map[string]string{"field": "password"}},
				},
			},
			{
				Name:    "timezone",
				Type:    FieldTypeString,
				Label:   "Time zone",
				Default: "UTC",
			},
			{
				Name:     "agree_terms",
				Type:     FieldTypeBoolean,
				Required: true,
				Label:    "I agree to the terms of service",
			},
			{
				Name:      "captcha",
				Type:      FieldTypeString,
				Required:  true,
				Label:     "Verification code",
				Condition: FlagCaptcha,
			},
		},
	}
}
