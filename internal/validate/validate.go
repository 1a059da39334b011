package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const passwordSymbols = "@$!%*?&"

type RegisterInput struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(in RegisterInput) error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(in.Name) > 30 {
		return errors.New("name must be at most 30 characters")
	}
	if err := username(in.Username); err != nil {
		return err
	}
	if in.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return errors.New("email must be a valid email address")
	}
	if err := Password(in.Password); err != nil {
		return err
	}
	if in.ConfirmPassword != in.Password {
		return errors.New("confirmPassword must match password")
	}
	return nil
}

func Login(in LoginInput) error {
	if err := username(in.Username); err != nil {
		return err
	}
	// mirrors registration: the password shape is checked only when present
	if in.Password != "" {
		return Password(in.Password)
	}
	return nil
}

func username(v string) error {
	if v == "" {
		return errors.New("username is required")
	}
	if n := utf8.RuneCountInString(v); n < 5 || n > 30 {
		return errors.New("username must be 5 to 30 characters")
	}
	return nil
}

// Password enforces 8-20 characters with at least one lowercase letter,
// one uppercase letter, one digit and one of @$!%*?&, drawn only from
// that alphabet.
func Password(v string) error {
	if n := utf8.RuneCountInString(v); n < 8 || n > 20 {
		return errors.New("password must be 8 to 20 characters")
	}
	var lower, upper, digit, symbol bool
	for _, r := range v {
		switch {
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			lower = true
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return fmt.Errorf("password may only contain letters, digits and %s", passwordSymbols)
		}
	}
	if !lower || !upper || !digit || !symbol {
		return fmt.Errorf("password needs an uppercase letter, a lowercase letter, a digit and one of %s", passwordSymbols)
	}
	return nil
}
