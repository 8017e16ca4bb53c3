package contact

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/portfolio/internal/apperr"
)

// emailPattern is a sanity check only: one "@" and a dot in the domain part.
// The excluded class covers every character browsers treat as whitespace:
// RE2's \s stops at ASCII, so \v, the Unicode separators and BOM are added.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// Input is a candidate contact submission.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// normalized trims the identity fields. The message is kept verbatim so that
// its line breaks survive into the notification.
func (in Input) normalized() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// Validate checks presence of all fields first, then the email shape.
func Validate(in Input) error {
	in = in.normalized()
	message := strings.TrimSpace(in.Message)

	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrMissingFields, err)
	}
	if err := validation.Validate(message, validation.Required); err != nil {
		return fmt.Errorf("%w: message: %w", apperr.ErrMissingFields, err)
	}

	if err := validation.Validate(in.Email, validation.Match(emailPattern)); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalidEmail, err)
	}
	return nil
}
