package domain

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	t.Run("Should normalize email", func(t *testing.T) {
		t.Parallel()

		got, err := NormalizeEmail("  Test.User@Gmail.COM  ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if got != "test.user@gmail.com" {
			t.Errorf("Expected normalized email, got %s", got)
		}
	})

	t.Run("Should fail with invalid email", func(t *testing.T) {
		t.Parallel()

		_, err := NormalizeEmail("invalid-email-format")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	if err := CheckPassword("12345"); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected short password to fail, got %v", err)
	}

	if err := CheckPassword("123456"); err != nil {
		t.Errorf("Expected valid password, got %v", err)
	}
}
