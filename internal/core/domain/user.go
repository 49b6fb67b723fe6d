package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const MinPasswordLen = 6

// User mirrors the account record written at sign-up. ID equals the id
// issued by the authenticator.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is what a successful sign-in yields.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// NormalizeEmail lowercases and trims an address, rejecting malformed ones.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", NewError(KindValidation, "invalid email format")
	}
	return email, nil
}

func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return Errorf(KindValidation, "password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}
