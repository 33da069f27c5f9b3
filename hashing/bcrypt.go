package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used by [NewDefaultManager] when
// bcrypt is registered as an upgrade target for FSHP hashes.
const DefaultBcryptCost = 12

// BcryptHasher hashes passwords with bcrypt.
//
// It is registered next to [FSHPHasher] so that a [Manager] whose default is
// switched to bcrypt keeps verifying stored FSHP hashes and reports them via
// [Manager.NeedsRehash] until they are re-hashed.
//
// Bcrypt truncates passwords longer than 72 bytes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns [ErrInvalidOption] when cost is outside
// [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Driver returns [DriverBcrypt].
func (h *BcryptHasher) Driver() DriverName { return DriverBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Make returns the Modular Crypt Format hash ("$2a$12$...").
func (h *BcryptHasher) Make(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: %w", err)
	}
	return string(hash), nil
}

// Check returns (false, nil) on mismatch.
func (h *BcryptHasher) Check(password, hash string) (bool, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NeedsRehash reports whether the stored cost differs from the configured one.
func (h *BcryptHasher) NeedsRehash(hash string) (bool, error) {
	cost, err := h.storedCost(hash)
	if err != nil {
		return false, err
	}
	return cost != h.cost, nil
}

// Info returns the stored cost as Params["cost"].
func (h *BcryptHasher) Info(hash string) (HashInfo, error) {
	cost, err := h.storedCost(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{Driver: DriverBcrypt, Params: map[string]any{"cost": cost}}, nil
}

func (h *BcryptHasher) storedCost(hash string) (int, error) {
	if d, ok := DetectDriver(hash); !ok || d != DriverBcrypt {
		return 0, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost, nil
}
