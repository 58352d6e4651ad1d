package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// Profile is the résumé document stored in the profile gist. Field names on the
// wire are the ones the gist has always used.
type Profile struct {
	Name        string       `json:"nome" validate:"required"`
	Contact     Contact      `json:"contato"`
	Objective   string       `json:"objetivos"`
	Education   []Education  `json:"formacao" validate:"dive"`
	Experiences []Experience `json:"experiencias" validate:"dive"`
}

// Contact holds the ways a visitor can reach the profile owner. Values are
// rendered as given; a link without a scheme is still a usable contact.
type Contact struct {
	Email  string `json:"email"`
	GitHub string `json:"github"`
	Phone  string `json:"telefone"`
}

// Education is one entry of the education timeline.
type Education struct {
	Course      string `json:"curso"`
	Institution string `json:"instituicao"`
	Period      string `json:"periodo"`
}

// Experience is one entry of the professional experience timeline.
type Experience struct {
	Role        string `json:"cargo"`
	Company     string `json:"empresa"`
	Period      string `json:"periodo"`
	Description string `json:"descricao"`
}

// Validate runs validation checks on the Profile using the defined tags.
func (p *Profile) Validate() error {
	if err := validatorInstance.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// GitHubHandle returns the last path segment of the GitHub contact URL.
func (c Contact) GitHubHandle() string {
	trimmed := strings.TrimRight(c.GitHub, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// PhoneDigits strips everything but digits from the phone number, for tel: links.
func (c Contact) PhoneDigits() string {
	var b strings.Builder
	for _, r := range c.Phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
