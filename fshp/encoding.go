package fshp

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// headerPrefix opens every encoded hash: {FSHP<id>|<saltlen>|<rounds>}.
const headerPrefix = "{FSHP"

// Record is the decoded content of one FSHP hash.
//
// A Record is a value: it is produced by [Crypt] / [Hasher.Make] on the
// creation path or by [Parse] on the verification path, and is never mutated
// by this package afterwards.
type Record struct {
	Variant Variant
	Salt    []byte
	Rounds  int
	Digest  []byte
}

// Header returns the {FSHP<id>|<saltlen>|<rounds>} prefix of the encoding.
func (r Record) Header() string {
	return fmt.Sprintf("{FSHP%d|%d|%d}", int(r.Variant), len(r.Salt), r.Rounds)
}

// String returns the canonical encoded form: the header immediately followed
// by the padded standard base64 encoding of salt || digest.
func (r Record) String() string {
	body := make([]byte, 0, len(r.Salt)+len(r.Digest))
	body = append(body, r.Salt...)
	body = append(body, r.Digest...)
	return r.Header() + base64.StdEncoding.EncodeToString(body)
}

// Verify recomputes the digest for password with the record's parameters
// and compares it to the stored digest in constant time.
func (r Record) Verify(password []byte) (bool, error) {
	computed, err := Derive(r.Variant, r.Salt, password, r.Rounds)
	if err != nil {
		return false, err
	}
	return Equal(computed, r.Digest), nil
}

// IsHash reports whether s looks like an FSHP hash.  It only inspects the
// prefix and the closing brace of the header and does not validate fields.
func IsHash(s string) bool {
	return strings.HasPrefix(s, headerPrefix) && strings.IndexByte(s, '}') > len(headerPrefix)
}

// Parse decodes an encoded hash string.
//
// Grammar:
//
//	{FSHP<id>|<saltlen>|<rounds>}<base64(salt || digest)>
//
// Every returned error matches [ErrInvalidHash] together with one of
// [ErrMalformedHeader], [ErrUnknownVariant], [ErrMalformedEncoding] or
// [ErrTruncatedRecord].
func Parse(encoded string) (Record, error) {
	if !strings.HasPrefix(encoded, headerPrefix) {
		return Record{}, invalid(ErrMalformedHeader, "missing %q prefix", headerPrefix)
	}
	end := strings.IndexByte(encoded, '}')
	if end < 0 {
		return Record{}, invalid(ErrMalformedHeader, "missing closing brace")
	}

	fields := strings.Split(encoded[len(headerPrefix):end], "|")
	if len(fields) != 3 {
		return Record{}, invalid(ErrMalformedHeader, "expected 3 header fields, got %d", len(fields))
	}
	var nums [3]int
	for i, f := range fields {
		n, err := parseDecimal(f)
		if err != nil {
			return Record{}, invalid(ErrMalformedHeader, "field %d: %v", i+1, err)
		}
		nums[i] = n
	}
	id, saltLen, rounds := nums[0], nums[1], nums[2]
	if rounds < 1 {
		return Record{}, invalid(ErrMalformedHeader, "rounds must be ≥ 1, got %d", rounds)
	}

	v, err := ParseVariant(id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded[end+1:])
	if err != nil {
		return Record{}, invalid(ErrMalformedEncoding, "%v", err)
	}
	if len(raw) < saltLen {
		return Record{}, invalid(ErrTruncatedRecord, "body has %d bytes, salt needs %d", len(raw), saltLen)
	}
	if got := len(raw) - saltLen; got != v.Size() {
		return Record{}, invalid(ErrTruncatedRecord, "%s digest must be %d bytes, got %d", v, v.Size(), got)
	}

	return Record{
		Variant: v,
		Salt:    raw[:saltLen:saltLen],
		Rounds:  rounds,
		Digest:  raw[saltLen:],
	}, nil
}

// parseDecimal accepts 1*DIGIT only; strconv.Atoi alone would also allow a
// sign prefix.
func parseDecimal(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-numeric field %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("numeric field %q out of range", s)
	}
	return n, nil
}

func invalid(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidHash, cause, fmt.Sprintf(format, args...))
}
