package fshp

import (
	"crypto/subtle"
	"fmt"
)

// Derive runs the iterated construction and returns the raw digest.
//
// The first round hashes salt || password; each following round hashes the
// previous digest alone.  The hash function is invoked exactly rounds times.
func Derive(v Variant, salt, password []byte, rounds int) ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}

	h := v.New()
	h.Write(salt)
	h.Write(password)
	digest := h.Sum(nil)
	for i := 1; i < rounds; i++ {
		h.Reset()
		h.Write(digest)
		digest = h.Sum(digest[:0])
	}
	return digest, nil
}

// Crypt hashes password with an explicit salt and returns the encoded string.
// The salt is used verbatim; nil and empty salts are equivalent.
//
// Crypt is deterministic: the same arguments always yield the same string.
// Use [Hasher.Make] or [Make] to hash with a freshly generated random salt.
func Crypt(password, salt []byte, rounds int, v Variant) (string, error) {
	digest, err := Derive(v, salt, password, rounds)
	if err != nil {
		return "", err
	}
	return Record{Variant: v, Salt: salt, Rounds: rounds, Digest: digest}.String(), nil
}

// CryptString is [Crypt] for a text password, hashed as its UTF-8 bytes.
func CryptString(password, salt string, rounds int, v Variant) (string, error) {
	return Crypt([]byte(password), []byte(salt), rounds, v)
}

// Check reports whether password matches the encoded hash.
//
// A wrong password yields (false, nil).  An error is returned only when
// encoded cannot be parsed; such errors match [ErrInvalidHash].
func Check(password []byte, encoded string) (bool, error) {
	r, err := Parse(encoded)
	if err != nil {
		return false, err
	}
	return r.Verify(password)
}

// CheckString is [Check] for a text password.
func CheckString(password, encoded string) (bool, error) {
	return Check([]byte(password), encoded)
}

// Make hashes password with [DefaultOptions]: FSHP1, an 8-byte salt from
// crypto/rand and 4096 rounds.
func Make(password string) (string, error) {
	h := &Hasher{opts: DefaultOptions()}
	return h.Make(password)
}

// Equal compares two digests in constant time with respect to their content.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
