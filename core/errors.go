package core

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAppName   = errors.New("appName option is required")
	ErrNoChains         = errors.New("at least one chain is required")
	ErrInvalidChain     = errors.New("invalid chain")
	ErrInvalidEndpoint  = errors.New("invalid rpc endpoint")
	ErrBridgeNotFound   = errors.New("wallet bridge not found")
	ErrNotConnected     = errors.New("wallet bridge not connected")
	ErrAccountNotFound  = errors.New("no account for chain")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalidated = errors.New("token has been invalidated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrSessionNotFound  = errors.New("session not found")
)

// ErrorType classifies every error the authenticator raises or records.
type ErrorType string

const (
	ErrorTypeConfiguration  ErrorType = "configuration"
	ErrorTypeInitialization ErrorType = "initialization"
	ErrorTypeLogin          ErrorType = "login"
	ErrorTypeLogout         ErrorType = "logout"
	ErrorTypeSigning        ErrorType = "signing"
)

// AuthError is a classified authenticator error. The underlying cause is
// always kept and reachable through errors.Is / errors.As.
type AuthError struct {
	Message string
	Type    ErrorType
	Cause   error
	Source  string
}

// NewAuthError creates an error attributed to the Wombat authenticator.
func NewAuthError(message string, typ ErrorType, cause error) *AuthError {
	return &AuthError{
		Message: message,
		Type:    typ,
		Cause:   cause,
		Source:  Name,
	}
}

func (e *AuthError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// IsType reports whether err carries an AuthError of the given type.
func IsType(err error, typ ErrorType) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Type == typ
	}
	return false
}
