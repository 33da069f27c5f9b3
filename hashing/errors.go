package hashing

import (
	"errors"

	"github.com/hasbyte1/go-fshp/fshp"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := m.CheckWithDetect(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed.  It is
	// the same value as [fshp.ErrInvalidHash], so one check covers errors
	// from both packages.
	ErrInvalidHash = fshp.ErrInvalidHash

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value outside the allowed range.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrDriverNotFound is returned when the requested driver has not been
	// registered with the [Manager].
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] for "".
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] for a nil [Hasher].
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch is returned when a hash was produced by a
	// different algorithm than the hasher it was passed to.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
