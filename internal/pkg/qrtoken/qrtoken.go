// Package qrtoken creates and verifies the opaque token strings that get
// rendered into QR codes. Tokens are plain strings; image encoding is the
// caller's concern.
package qrtoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Kind distinguishes the two token families carried on badges and stall
// posters.
type Kind byte

const (
	KindStudent Kind = 'U'
	KindStall   Kind = 'S'
)

// MaxTokenLength is the hard cap on rendered tokens. Downstream QR
// encoders are configured for short strings; anything longer is rejected
// at issuance.
const MaxTokenLength = 50

const prefix = "EXPO1"

// randomHexLen yields 4 random bytes, 32 bits of entropy per token.
const randomHexLen = 8

var ErrTokenTooLong = errors.New("token exceeds maximum length")

var tokenPattern = regexp.MustCompile(`^EXPO1\.([SU])([1-9][0-9]{0,18})\.([0-9a-z]{1,13})\.([0-9a-f]{8})$`)

// Issue builds a new token of the given kind bound to the given entity
// id, stamped with issuedAt (unix seconds).
func Issue(kind Kind, id uint, issuedAt int64) (string, error) {
	if id == 0 {
		return "", errors.New("id must be positive")
	}
	if issuedAt < 0 {
		return "", errors.New("issuedAt must not be negative")
	}

	buf := make([]byte, randomHexLen/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read -> %w", err)
	}

	token := fmt.Sprintf("%s.%c%d.%s.%s",
		prefix, kind, id, strconv.FormatInt(issuedAt, 36), hex.EncodeToString(buf))
	if len(token) > MaxTokenLength {
		return "", ErrTokenTooLong
	}

	return token, nil
}

// Verify checks a token's structure and extracts the embedded kind and
// entity id. It is pure and never fails with an error: malformed input
// is an ordinary ok=false result. A structurally valid token still has
// to be resolved against storage by the caller.
func Verify(token string) (Kind, uint, bool) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil || len(token) > MaxTokenLength {
		return 0, 0, false
	}

	id, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil || id == 0 {
		return 0, 0, false
	}

	return Kind(m[1][0]), uint(id), true
}
