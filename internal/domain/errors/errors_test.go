package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unauthorized", ErrUnauthorized},
		{"invalid request", ErrInvalidRequest},
		{"gateway", ErrGateway},
		{"signature mismatch", ErrSignatureMismatch},
		{"already processed", ErrAlreadyProcessed},
		{"entitlement pending", ErrEntitlementPending},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestGatewayError(t *testing.T) {
	err := fmt.Errorf("create order: %w", &GatewayError{Description: "BAD_REQUEST_ERROR", Err: context.DeadlineExceeded})
	if !stdErrors.Is(err, ErrGateway) {
		t.Fatalf("expected gateway error to match sentinel")
	}
	if !stdErrors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped cause to be reachable")
	}

	var gwErr *GatewayError
	if !stdErrors.As(err, &gwErr) || gwErr.Description != "BAD_REQUEST_ERROR" {
		t.Fatalf("expected description to be preserved, got %v", gwErr)
	}

	plain := &GatewayError{Description: "Authentication failed"}
	if plain.Error() != "payment gateway error: Authentication failed" {
		t.Fatalf("unexpected message %q", plain.Error())
	}
	if stdErrors.Is(plain, ErrNotFound) {
		t.Fatalf("gateway error must not match unrelated sentinels")
	}
}
