package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrGateway            = errors.New("payment gateway error")
	ErrSignatureMismatch  = errors.New("signature mismatch")
	ErrAlreadyProcessed   = errors.New("order already processed")
	ErrEntitlementPending = errors.New("entitlement pending")
)

// GatewayError carries the upstream description of a failed gateway call.
type GatewayError struct {
	Description string
	Err         error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrGateway, e.Description, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrGateway, e.Description)
}

// Is makes errors.Is(err, ErrGateway) hold for every GatewayError.
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
