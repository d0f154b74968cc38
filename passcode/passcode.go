// Package passcode stores keypad codes as salted, iterated hashes.
//
// A record is encoded on one line as scheme:iter:salthex:hashhex.
package passcode

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxDigits matches the keypad text field capacity.
	MaxDigits = 10

	DefaultIter = 4096
	MaxIter     = 1_000_000
)

var ErrBadCode = errors.New("bad code")

type Scheme uint8

const (
	SchemeUnknown Scheme = iota
	SchemeSHA256Iter
	SchemePBKDF2SHA256
)

func ParseScheme(s string) (Scheme, bool) {
	switch s {
	case "pbkdf2-sha256":
		return SchemePBKDF2SHA256, true
	case "sha256-iter":
		return SchemeSHA256Iter, true
	default:
		return SchemeUnknown, false
	}
}

func (s Scheme) String() string {
	switch s {
	case SchemePBKDF2SHA256:
		return "pbkdf2-sha256"
	case SchemeSHA256Iter:
		return "sha256-iter"
	default:
		return "unknown"
	}
}

type Record struct {
	Scheme Scheme
	Iter   int
	Salt   [16]byte
	Hash   [32]byte
}

// ValidCode reports whether code is 1 to MaxDigits decimal digits.
func ValidCode(code []byte) bool {
	if len(code) == 0 || len(code) > MaxDigits {
		return false
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// New hashes code with PBKDF2-SHA256.
func New(code []byte, iter int, salt [16]byte) (Record, error) {
	return NewWithScheme(SchemePBKDF2SHA256, code, iter, salt)
}

func NewWithScheme(s Scheme, code []byte, iter int, salt [16]byte) (Record, error) {
	if !ValidCode(code) {
		return Record{}, ErrBadCode
	}
	if iter <= 0 || iter > MaxIter {
		return Record{}, errors.New("bad iter")
	}
	rec := Record{Scheme: s, Iter: iter, Salt: salt}
	switch s {
	case SchemePBKDF2SHA256:
		rec.Hash = HashPBKDF2SHA256(iter, salt, code)
	case SchemeSHA256Iter:
		rec.Hash = HashSHA256Iter(iter, salt, code)
	default:
		return Record{}, errors.New("bad scheme")
	}
	return rec, nil
}

// Verify compares code against the stored hash in constant time.
func (r Record) Verify(code []byte) bool {
	want := r.Hash

	var got [32]byte
	switch r.Scheme {
	case SchemePBKDF2SHA256:
		got = HashPBKDF2SHA256(r.Iter, r.Salt, code)
	case SchemeSHA256Iter:
		got = HashSHA256Iter(r.Iter, r.Salt, code)
	default:
		return false
	}
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func (r Record) String() string {
	return fmt.Sprintf("%s:%d:%s:%s",
		r.Scheme.String(),
		r.Iter,
		hex.EncodeToString(r.Salt[:]),
		hex.EncodeToString(r.Hash[:]),
	)
}

// Parse decodes a record produced by Record.String.
func Parse(s string) (Record, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 4 {
		return Record{}, errors.New("bad record")
	}
	scheme, ok := ParseScheme(parts[0])
	if !ok {
		return Record{}, errors.New("bad scheme")
	}
	iter, err := parseInt(parts[1])
	if err != nil || iter <= 0 {
		return Record{}, errors.New("bad iter")
	}
	saltB, err := hex.DecodeString(parts[2])
	if err != nil || len(saltB) != 16 {
		return Record{}, errors.New("bad salt")
	}
	hashB, err := hex.DecodeString(parts[3])
	if err != nil || len(hashB) != 32 {
		return Record{}, errors.New("bad hash")
	}
	rec := Record{Scheme: scheme, Iter: iter}
	copy(rec.Salt[:], saltB)
	copy(rec.Hash[:], hashB)
	return rec, nil
}

func HashSHA256Iter(iter int, salt [16]byte, code []byte) [32]byte {
	h := sha256.New()
	_, _ = h.Write(salt[:])
	_, _ = h.Write(code)
	var sum [32]byte
	_ = h.Sum(sum[:0])
	for i := 1; i < iter; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return sum
}

// HashPBKDF2SHA256 is PBKDF2 with HMAC-SHA256, producing a single block.
func HashPBKDF2SHA256(iter int, salt [16]byte, code []byte) [32]byte {
	if iter <= 0 {
		iter = 1
	}
	var block [4]byte
	binary.BigEndian.PutUint32(block[:], 1)

	var u, t [32]byte
	mac := hmac.New(sha256.New, code)
	_, _ = mac.Write(salt[:])
	_, _ = mac.Write(block[:])
	_ = mac.Sum(u[:0])
	t = u

	for i := 1; i < iter; i++ {
		mac.Reset()
		_, _ = mac.Write(u[:])
		_ = mac.Sum(u[:0])
		for j := range t {
			t[j] ^= u[j]
		}
	}
	return t
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return 0, errors.New("bad digit")
		}
		n = n*10 + int(ch-'0')
		if n > MaxIter {
			return 0, errors.New("too big")
		}
	}
	return n, nil
}
