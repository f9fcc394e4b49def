package domain

import "errors"

// Account errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPExpired     = errors.New("otp code expired")
	ErrOTPDelivery    = errors.New("otp delivery failed")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid or expired token")
	ErrTokenRevoked = errors.New("refresh token already used or revoked")
	ErrUnauthorized = errors.New("unauthorized")
)

// Store errors
var (
	ErrDeviceNotFound = errors.New("device not found")
)

// FieldError attaches a field pointer to a domain error so the transport
// layer can render field-level validation feedback.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string { return e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// WithField wraps err with the name of the offending request field
func WithField(err error, field string) error {
	return &FieldError{Err: err, Field: field}
}

// FieldOf returns the field pointer carried by err, if any
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// IsDomainError reports whether err is one of the recognized domain errors.
// Token paths downgrade everything else to ErrUnauthorized so internal
// failure detail never leaks on security-sensitive flows.
func IsDomainError(err error) bool {
	for _, known := range []error{
		ErrEmailAlreadyExists, ErrAccountNotFound, ErrInvalidCredentials,
		ErrUserNotFound, ErrRoleNotFound,
		ErrOTPInvalid, ErrOTPExpired, ErrOTPDelivery, ErrOTPResendLimit,
		ErrTokenInvalid, ErrTokenRevoked, ErrUnauthorized,
		ErrDeviceNotFound,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
