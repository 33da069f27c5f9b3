package fshp

import "errors"

// Sentinel errors returned by the fshp package.
//
// Every error produced while parsing an encoded hash matches both
// [ErrInvalidHash] and the specific cause:
//
//	ok, err := fshp.Check(password, stored)
//	if errors.Is(err, fshp.ErrInvalidHash) {
//	    // stored value is not a usable FSHP hash
//	}
//	if errors.Is(err, fshp.ErrTruncatedRecord) {
//	    // body decoded but is too short / too long for the variant
//	}
var (
	// ErrInvalidHash is the umbrella error for any encoded hash string that
	// cannot be decoded.
	ErrInvalidHash = errors.New("fshp: invalid hash string")

	// ErrUnknownVariant is returned when a variant id is outside {0,1,2,3}.
	ErrUnknownVariant = errors.New("fshp: unknown variant")

	// ErrInvalidRounds is returned when the iteration count is less than 1.
	ErrInvalidRounds = errors.New("fshp: rounds must be at least 1")

	// ErrInvalidSaltLen is returned when a negative salt length is configured.
	ErrInvalidSaltLen = errors.New("fshp: salt length must not be negative")

	// ErrMalformedHeader is returned when the {FSHP<id>|<n>|<r>} header does
	// not follow the grammar.
	ErrMalformedHeader = errors.New("fshp: malformed header")

	// ErrMalformedEncoding is returned when the body is not valid base64.
	ErrMalformedEncoding = errors.New("fshp: malformed base64 body")

	// ErrTruncatedRecord is returned when the decoded body is shorter than
	// the declared salt length, or the digest does not have the variant's size.
	ErrTruncatedRecord = errors.New("fshp: truncated record")
)
