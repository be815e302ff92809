package domain

import (
	"chat-relay/errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type joinRequest struct {
	Name string `validate:"required,max=32"`
}

// ValidateDisplayName rejects names that would corrupt the line-oriented
// protocol: empty, longer than 32 runes, or containing newlines, carriage
// returns, or ':'. The rune check is done by hand because a ':' cannot be
// written inside a validator tag param.
func ValidateDisplayName(name string) error {
	if err := validate.Struct(joinRequest{Name: name}); err != nil {
		return errors.ErrInvalidDisplayName
	}
	if strings.ContainsAny(name, "\n\r:") {
		return errors.ErrInvalidDisplayName
	}
	return nil
}
