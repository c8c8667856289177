package contact_errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_UnwrapsToInvalidInput(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("The %s field is required.", "name"))

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected errors.Is(err, ErrInvalidInput)")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected errors.As to find *ValidationError")
	}
	if ve.Message != "The name field is required." {
		t.Errorf("unexpected message %q", ve.Message)
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	err := NewStorageError("put", ErrTooLarge)

	if !errors.Is(err, ErrTooLarge) {
		t.Error("expected StorageError to unwrap to ErrTooLarge")
	}
	if err.Error() != "storage put: file too large" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
