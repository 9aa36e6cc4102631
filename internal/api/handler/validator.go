package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// The domain's validation predicates are registered as custom tags, so the
// exact acceptance rules live in one place and request structs just name them.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	stringRule := func(pred func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return pred(fl.Field().String())
		}
	}
	_ = v.RegisterValidation("username", stringRule(domain.ValidUserName))
	_ = v.RegisterValidation("password", stringRule(domain.ValidPassword))
	_ = v.RegisterValidation("polltitle", stringRule(domain.ValidPollTitle))
	_ = v.RegisterValidation("polldesc", stringRule(domain.ValidPollDescription))
	_ = v.RegisterValidation("pollnotes", stringRule(domain.ValidPollNotes))
	_ = v.RegisterValidation("votechoice", stringRule(domain.ValidVoteChoice))

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "username":
		return field + " must be 4-32 alphanumeric characters"
	case "password":
		return field + " must be 4-32 alphanumeric or underscore characters"
	case "polltitle":
		return field + " must be 4-48 characters, start with an upper-case letter, contain only letters, digits and spaces, and not end with a space"
	case "polldesc":
		return field + " must be 4-256 characters, start with an upper-case letter, contain no newlines, and not end in whitespace"
	case "pollnotes":
		return field + " must be at most 64 characters without newlines"
	case "votechoice":
		return field + ` must be "Yes" or "No"`
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
