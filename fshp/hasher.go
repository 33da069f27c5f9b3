package fshp

import (
	"crypto/rand"
	"fmt"
	"io"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultVariant is FSHP1 (SHA-256).
	DefaultVariant = SHA256

	// DefaultRounds is the default iteration count.
	DefaultRounds = 4096

	// DefaultSaltLen is the default random salt length in bytes.  Eight bytes
	// multiply the storage needed for a precomputed table by 2^64.
	DefaultSaltLen = 8
)

// Options configures a [Hasher].
//
// Variant, Rounds and the salt length are encoded into every hash, so
// changing them only affects newly produced hashes.  Existing hashes stay
// verifiable, and [Hasher.NeedsRehash] reports them as outdated.
type Options struct {
	// Variant selects the hash primitive.  Default: [DefaultVariant].
	Variant Variant

	// Rounds is the iteration count.  Minimum: 1.  Default: [DefaultRounds].
	Rounds int

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 0.  Default: [DefaultSaltLen].
	SaltLen int

	// Rand is the source of salt bytes.  nil means crypto/rand.Reader.
	// Tests may inject a deterministic reader; a Rand shared between
	// goroutines must be safe for concurrent use.
	Rand io.Reader
}

// DefaultOptions returns Options with the recommended defaults.
func DefaultOptions() Options {
	return Options{
		Variant: DefaultVariant,
		Rounds:  DefaultRounds,
		SaltLen: DefaultSaltLen,
	}
}

func validateOptions(opts Options) error {
	if !opts.Variant.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownVariant, int(opts.Variant))
	}
	if opts.Rounds < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, opts.Rounds)
	}
	if opts.SaltLen < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSaltLen, opts.SaltLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Hasher
// ──────────────────────────────────────────────────────────────────────────────

// Hasher produces FSHP hashes with a fixed parameter set and random salts.
//
// # Thread safety
//
// Hasher is immutable after construction and safe for concurrent use as long
// as its Rand reader is.
type Hasher struct {
	opts Options
}

// NewHasher constructs a Hasher.  Use [DefaultOptions] for the defaults.
func NewHasher(opts Options) (*Hasher, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Hasher{opts: opts}, nil
}

// Options returns the hasher's parameter set.
func (h *Hasher) Options() Options { return h.opts }

// Make hashes password with a fresh random salt of the configured length.
func (h *Hasher) Make(password string) (string, error) {
	salt, err := h.randomSalt()
	if err != nil {
		return "", err
	}
	return Crypt([]byte(password), salt, h.opts.Rounds, h.opts.Variant)
}

// MakeWithSalt hashes password with a caller-supplied salt.  The configured
// salt length is ignored; the encoding records len(salt).
func (h *Hasher) MakeWithSalt(password string, salt []byte) (string, error) {
	return Crypt([]byte(password), salt, h.opts.Rounds, h.opts.Variant)
}

// Check verifies password against hash.  The parameters are read from the
// hash itself, so hashes produced with other options verify as well.
func (h *Hasher) Check(password, hash string) (bool, error) {
	return Check([]byte(password), hash)
}

// NeedsRehash reports whether hash was produced with a variant, round count
// or salt length other than the hasher's current options.
func (h *Hasher) NeedsRehash(hash string) (bool, error) {
	r, err := Parse(hash)
	if err != nil {
		return false, err
	}
	return r.Variant != h.opts.Variant ||
		r.Rounds != h.opts.Rounds ||
		len(r.Salt) != h.opts.SaltLen, nil
}

func (h *Hasher) randomSalt() ([]byte, error) {
	src := h.opts.Rand
	if src == nil {
		src = rand.Reader
	}
	b := make([]byte, h.opts.SaltLen)
	if _, err := io.ReadFull(src, b); err != nil {
		return nil, fmt.Errorf("fshp: failed to generate salt: %w", err)
	}
	return b, nil
}
