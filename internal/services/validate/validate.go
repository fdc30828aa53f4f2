// Package validate is the single shared email/password validator used by
// the sign-in, sign-up and password-reset handlers, so every call site
// reports the same messages.
package validate

import (
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/readbacklabs/readback-web/internal/autherr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return passwordStrong(fl.Field().String())
	})
	return v
}

// passwordStrong requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a symbol.
func passwordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// Email validates an email address.
func Email(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return autherr.ValidationError("a valid email address is required")
	}
	return nil
}

// Password validates password strength.
func Password(password string) error {
	if err := validate.Var(password, "required,password_strength"); err != nil {
		return autherr.ValidationError("password must be at least 8 characters and include upper and lower case letters, a number and a symbol")
	}
	return nil
}

// Username validates an account username.
func Username(username string) error {
	if err := validate.Var(username, "required,min=3,max=32,alphanum"); err != nil {
		return autherr.ValidationError("username must be 3-32 alphanumeric characters")
	}
	return nil
}

// Credentials validates a sign-in pair. Sign-in only checks that the
// password is present; strength rules apply when the password is set.
func Credentials(email, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	if password == "" {
		return autherr.ValidationError("password is required")
	}
	return nil
}
