package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rently/rently-client/internal/core/domain"
)

// credentials is validated field-by-field in declaration order, so an empty
// name is reported before an empty password.
type credentials struct {
	Name     string `validate:"notblank"`
	Password string `validate:"notblank"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// required would accept all-whitespace input; the forms trim first.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// checkCredentials reports the first missing field as a validation error
// with a message suitable for inline display.
func (m *SessionManager) checkCredentials(name, password string) error {
	err := m.validate.Struct(credentials{Name: name, Password: password})
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := strings.ToLower(ve[0].Field())
		return fmt.Errorf("%w: %s required", domain.ErrValidation, field)
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
