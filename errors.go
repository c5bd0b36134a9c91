package userauth

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when the authority or gate is built with
// missing or invalid settings (for example an empty signing secret)
var ErrConfiguration = errors.New("invalid auth configuration")

// ErrSigning is returned when a token can not be issued
var ErrSigning = errors.New("unable to sign token")

// ErrInvalidToken is the family of every verification failure
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired the token is past its exp claim
var ErrTokenExpired = fmt.Errorf("%w: token is expired", ErrInvalidToken)

// ErrTokenMalformed the token could not be decoded or is missing claims
var ErrTokenMalformed = fmt.Errorf("%w: token is malformed", ErrInvalidToken)

// ErrSignatureInvalid the signature does not match the held secret
var ErrSignatureInvalid = fmt.Errorf("%w: token signature is invalid", ErrInvalidToken)

// ErrMissingCredential no token was found in any request location
var ErrMissingCredential = errors.New("missing auth token")

// ErrHashing wraps failures of the password hashing primitive
var ErrHashing = errors.New("password hashing failed")

// ErrNoEmptyString empty passwords are never hashed
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword the cleartext does not match the hash
var ErrMismatchedHashAndPassword = errors.New("password does not match hash")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return err != nil && errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for tokens that could not be decoded
func IsMalformedError(err error) bool {
	return err != nil && errors.Is(err, ErrTokenMalformed)
}

// IsInvalidTokenError reports whether err is any verification failure
func IsInvalidTokenError(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidToken)
}
