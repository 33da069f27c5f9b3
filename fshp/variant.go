package fshp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// Variant selects the hash primitive and digest size used by the
// construction.  The set is closed: only the four constants below are valid.
type Variant int

const (
	// SHA1 is FSHP0.  Kept for compatibility with existing hashes; do not
	// use it for new passwords.
	SHA1 Variant = 0
	// SHA256 is FSHP1, the default.
	SHA256 Variant = 1
	// SHA384 is FSHP2.
	SHA384 Variant = 2
	// SHA512 is FSHP3.
	SHA512 Variant = 3
)

// ParseVariant resolves a numeric variant id.
// It returns [ErrUnknownVariant] for any id outside {0,1,2,3}.
func ParseVariant(id int) (Variant, error) {
	v := Variant(id)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVariant, id)
	}
	return v, nil
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	switch v {
	case SHA1, SHA256, SHA384, SHA512:
		return true
	default:
		return false
	}
}

// New returns a fresh hash.Hash for v, or nil if v is not valid.
func (v Variant) New() hash.Hash {
	switch v {
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Size returns the digest length in bytes, or 0 if v is not valid.
func (v Variant) Size() int {
	switch v {
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// Algorithm returns the name of the underlying hash function.
func (v Variant) Algorithm() string {
	switch v {
	case SHA1:
		return "SHA-1"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	default:
		return "unknown"
	}
}

// String returns the identifier token, e.g. "FSHP1".
func (v Variant) String() string {
	return fmt.Sprintf("FSHP%d", int(v))
}
