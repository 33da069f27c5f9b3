// Package fshp implements FSHP (Fairly Secure Hashed Password), a salted,
// iteratively hashed password scheme in the style of PBKDF1 (RFC 2898).
//
// # Construction
//
// For a variant with hash function H, a salt and an iteration count r:
//
//	d1 = H(salt || password)
//	dn = H(dn-1)            for n = 2..r
//
// The final digest dr is stored together with its parameters.
//
// # Variants
//
//	FSHP0  SHA-1    20-byte digest  (compatibility only)
//	FSHP1  SHA-256  32-byte digest  (default)
//	FSHP2  SHA-384  48-byte digest
//	FSHP3  SHA-512  64-byte digest
//
// # Hash format
//
//	{FSHP1|8|4096}MTIzNDU2NzjTdHcmoXwNc0ff9+ArUHoN0CvlbPZpxFi1C6RDM/MHSA==
//
// The header carries the variant, the salt length in bytes and the round
// count.  The body is standard padded base64 of salt || digest.  A hash is
// therefore self-describing and verifies without external configuration.
//
// # Quick start
//
//	hash, err := fshp.Make("OrpheanBeholderScryDoubt") // FSHP1, 8-byte salt, 4096 rounds
//	ok, err := fshp.CheckString("OrpheanBeholderScryDoubt", hash)
//
// Stronger parameters:
//
//	h, err := fshp.NewHasher(fshp.Options{Variant: fshp.SHA512, Rounds: 8192, SaltLen: 16})
//	hash, err := h.Make("ExecuteOrder66")
//
// FSHP is not memory-hard.  Prefer bcrypt or Argon2id for new systems; the
// hashing package can verify FSHP hashes and migrate them on login.
package fshp
