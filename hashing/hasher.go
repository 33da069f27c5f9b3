package hashing

import (
	"strings"

	"github.com/hasbyte1/go-fshp/fshp"
)

// DriverName identifies a hashing algorithm driver.
type DriverName string

const (
	// DriverFSHP selects the FSHP driver.
	DriverFSHP DriverName = "fshp"
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
)

// Hasher is the interface satisfied by every password-hashing driver.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh salt is generated for every call.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if the hash is structurally invalid.
	Check(password, hash string) (bool, error)

	// NeedsRehash returns true when the hash was produced with parameters
	// different from the hasher's current configuration.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm that produced the hash.
	Driver DriverName

	// Params holds algorithm-specific parameters.
	//
	// For FSHP:
	//   "variant"    → int    (0-3)
	//   "algorithm"  → string ("SHA-256", ...)
	//   "salt_len"   → int    (bytes)
	//   "rounds"     → int
	//   "digest_len" → int    (bytes)
	//
	// For bcrypt:
	//   "cost" → int
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it.  It only looks at the prefix and does not validate the hash.
//
// The second return value is false when the hash format is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case fshp.IsHash(hash):
		return DriverFSHP, true
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	default:
		return "", false
	}
}
