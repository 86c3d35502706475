package addressbook

import (
	"errors"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var (
	ErrNameRequired = errors.New(config.ErrNameRequired)
	ErrInvalidEmail = errors.New(config.ErrInvalidEmail)
)

// Validate checks a contact entered through the form.
// Imports bypass it; malformed rows are kept as-is.
func Validate(c Contact) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrNameRequired
	}
	if c.Email != "" && !govalidator.IsEmail(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}
