package site

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContactSubmission carries the contact form fields. There is no persistence;
// a submission either becomes a mailto link or an outbound email.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// Validate checks the submission before any mail handling happens. Header
// injection through the name or email field is rejected here so the SMTP
// path never has to sanitize.
func (s ContactSubmission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name,
			validation.Required,
			validation.Length(1, 200),
			validation.By(noLineBreaks),
		),
		validation.Field(&s.Email,
			validation.Required,
			is.Email,
			validation.By(noLineBreaks),
		),
		validation.Field(&s.Message,
			validation.Required,
			validation.Length(1, 10000),
		),
	)
}

func noLineBreaks(value interface{}) error {
	str, _ := value.(string)
	if strings.ContainsAny(str, "\r\n") {
		return validation.NewError("contact_line_break", "must not contain line breaks")
	}
	return nil
}
