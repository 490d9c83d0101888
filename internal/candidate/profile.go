// Package candidate holds the candidate profile collected during a screening
// session and its save-time validation rules.
package candidate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// FieldNames is the canonical field order used for rendering and persistence.
var FieldNames = []string{
	"name",
	"email",
	"phone",
	"experience",
	"position",
	"location",
	"tech_stack",
}

// Profile is the set of fields gathered from the candidate's free-text
// replies. An empty string means the field has not been captured yet. Fields
// are set one at a time by the extractor and never overwritten once set.
type Profile struct {
	Name       string `json:"name,omitempty" mapstructure:"name"`
	Email      string `json:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" mapstructure:"phone" validate:"omitempty,phone10"`
	Experience string `json:"experience,omitempty" mapstructure:"experience"`
	Position   string `json:"position,omitempty" mapstructure:"position"`
	Location   string `json:"location,omitempty" mapstructure:"location"`
	TechStack  string `json:"tech_stack,omitempty" mapstructure:"tech_stack"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// A phone number must carry at least 10 digits once separators and
	// country-code punctuation are stripped.
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		digits := 0
		for _, r := range fl.Field().String() {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		return digits >= 10
	})

	return v
}

// Validate checks the captured fields against their format rules. Empty
// fields always pass; validation is only enforced when a record is saved.
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// Fields returns the profile as a field-name keyed map. Unset fields are
// present with empty values; iterate FieldNames for a stable order.
func (p Profile) Fields() map[string]string {
	out := make(map[string]string, len(FieldNames))
	_ = mapstructure.Decode(p, &out)
	return out
}

// DisplayName converts a field name to its human readable form, e.g.
// "tech_stack" becomes "Tech stack".
func DisplayName(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
