package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is the caller-supplied applicant record. All fields are display
// strings passed through to the application template as-is; only Email is
// validated at the boundary.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Base      string `json:"base,omitempty"`
	Instagram string `json:"instagram,omitempty"`

	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Bust     string `json:"bust"`
	Waist    string `json:"waist"`
	Inseam   string `json:"inseam"`
	Neck     string `json:"neck"`
	Sleeve   string `json:"sleeve"`
	ShoeSize string `json:"shoeSize"`

	SkinColor string `json:"skinColor"`
	HairColor string `json:"hairColor"`
	EyeColor  string `json:"eyeColor"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
