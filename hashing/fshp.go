package hashing

import (
	"fmt"

	"github.com/hasbyte1/go-fshp/fshp"
)

// FSHPHasher adapts [fshp.Hasher] to the [Hasher] interface.
//
// Output format: {FSHP<variant>|<saltlen>|<rounds>}<base64(salt || digest)>.
//
// # Thread safety
//
// FSHPHasher is immutable after construction and safe for concurrent use.
type FSHPHasher struct {
	h *fshp.Hasher
}

// NewFSHPHasher constructs an FSHPHasher.  Use [fshp.DefaultOptions] for the
// defaults (FSHP1, 8-byte salt, 4096 rounds).
//
// Invalid options yield an error matching both [ErrInvalidOption] and the
// specific fshp sentinel (e.g. [fshp.ErrInvalidRounds]).
func NewFSHPHasher(opts fshp.Options) (*FSHPHasher, error) {
	h, err := fshp.NewHasher(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	return &FSHPHasher{h: h}, nil
}

// Driver returns [DriverFSHP].
func (h *FSHPHasher) Driver() DriverName { return DriverFSHP }

// Options returns the FSHP parameter set used for new hashes.
func (h *FSHPHasher) Options() fshp.Options { return h.h.Options() }

// Make hashes password with a fresh random salt.
func (h *FSHPHasher) Make(password string) (string, error) {
	return h.h.Make(password)
}

// Check verifies password against an FSHP hash.  Parameters are read from
// the hash, so hashes made with other options still verify.
func (h *FSHPHasher) Check(password, hash string) (bool, error) {
	if !fshp.IsHash(hash) {
		return false, fmt.Errorf("%w: hash does not appear to be fshp", ErrAlgorithmMismatch)
	}
	return h.h.Check(password, hash)
}

// NeedsRehash reports whether the stored variant, rounds or salt length
// differ from the configured options.
func (h *FSHPHasher) NeedsRehash(hash string) (bool, error) {
	if !fshp.IsHash(hash) {
		return false, fmt.Errorf("%w: hash does not appear to be fshp", ErrAlgorithmMismatch)
	}
	return h.h.NeedsRehash(hash)
}

// Info parses the hash and returns its parameters.
//
// Returned [HashInfo].Params:
//   - "variant"    → int
//   - "algorithm"  → string
//   - "salt_len"   → int
//   - "rounds"     → int
//   - "digest_len" → int
func (h *FSHPHasher) Info(hash string) (HashInfo, error) {
	if !fshp.IsHash(hash) {
		return HashInfo{}, fmt.Errorf("%w: hash does not appear to be fshp", ErrAlgorithmMismatch)
	}
	r, err := fshp.Parse(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverFSHP,
		Params: map[string]any{
			"variant":    int(r.Variant),
			"algorithm":  r.Variant.Algorithm(),
			"salt_len":   len(r.Salt),
			"rounds":     r.Rounds,
			"digest_len": len(r.Digest),
		},
	}, nil
}
