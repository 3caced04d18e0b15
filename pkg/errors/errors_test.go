package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewNotFoundError("shipment not found")

	if err.Error() != "shipment not found" {
		t.Fatalf("message: want=shipment not found got=%s", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound")
	}
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{NewNotFoundError("x"), http.StatusNotFound},
		{NewInvalidInputError("x"), http.StatusBadRequest},
		{NewUnauthenticatedError("x"), http.StatusUnauthorized},
		{NewConflictError("x"), http.StatusConflict},
		{NewInternalError("x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.code {
			t.Fatalf("status for %v: want=%d got=%d", tc.err, tc.code, got)
		}
	}
}

func TestWrappedAppErrorResolves(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewConflictError("provider already exists"))

	if !IsConflict(wrapped) {
		t.Fatalf("expected conflict through wrapping")
	}
	if StatusCode(wrapped) != http.StatusConflict {
		t.Fatalf("status: want=%d got=%d", http.StatusConflict, StatusCode(wrapped))
	}
}
