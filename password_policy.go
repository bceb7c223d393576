package accounts

import (
	"errors"
	"fmt"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// The password policy is enforced at account creation, before any hashing.
// Rules run in order and the first failure wins, length first.
var passwordRules = []validation.Rule{
	validation.By(minPasswordLength(6)),
	validation.By(requireRune("Password must contain at least one number", unicode.IsDigit)),
	validation.By(requireRune("Password must contain at least one uppercase letter", unicode.IsUpper)),
	validation.By(requireRune("Password must contain at least one lowercase letter", unicode.IsLower)),
}

// ValidatePassword checks the account-creation password policy: minimum
// length 6, at least one digit, one uppercase and one lowercase letter.
func ValidatePassword(password string) error {
	if err := validation.Validate(password, passwordRules...); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode("INVALID_PASSWORD")
	}
	return nil
}

func minPasswordLength(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) < n {
			return fmt.Errorf("Password must be at least %d characters long", n)
		}
		return nil
	}
}

func requireRune(message string, match func(rune) bool) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		for _, r := range s {
			if match(r) {
				return nil
			}
		}
		return errors.New(message)
	}
}
