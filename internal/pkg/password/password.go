// Package password hashes and verifies user passwords.
//
// New digests are argon2id in PHC string form. Verify also understands
// werkzeug scrypt digests and bcrypt digests so accounts imported from older
// deployments keep working.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 2
	argonKeyLen  uint32 = 32
	saltLen             = 16

	// Digests asking for more work than this are refused rather than
	// computed. Memory is in KiB for argon2 and bytes for scrypt.
	maxArgonMemory  = 1 << 20
	maxArgonTime    = 10
	maxKeyLen       = 64
	maxScryptN      = 1 << 20
	maxScryptR      = 32
	maxScryptP      = 16
	maxScryptMemory = 256 << 20
)

var b64 = base64.RawStdEncoding

// Hash returns a salted argon2id digest of plain.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt failed: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify reports whether plain matches digest. Malformed digests never match.
func Verify(plain, digest string) bool {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return verifyArgon2id(plain, digest)
	case strings.HasPrefix(digest, "scrypt:"):
		return verifyWerkzeugScrypt(plain, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
	default:
		return false
	}
}

func verifyArgon2id(plain, digest string) bool {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	if memory == 0 || iterations == 0 || threads == 0 {
		return false
	}
	if memory > maxArgonMemory || iterations > maxArgonTime {
		return false
	}
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil || len(want) == 0 || len(want) > maxKeyLen {
		return false
	}
	got := argon2.IDKey([]byte(plain), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// verifyWerkzeugScrypt checks "scrypt:N:r:p$salt$hexdigest" as written by
// werkzeug.security.generate_password_hash. The salt is used as text.
func verifyWerkzeugScrypt(plain, digest string) bool {
	method, rest, ok := strings.Cut(digest, "$")
	if !ok {
		return false
	}
	salt, hexKey, ok := strings.Cut(rest, "$")
	if !ok || salt == "" {
		return false
	}
	params := strings.Split(method, ":")
	n, r, p := 32768, 8, 1
	if len(params) == 4 {
		var err error
		if n, err = strconv.Atoi(params[1]); err != nil {
			return false
		}
		if r, err = strconv.Atoi(params[2]); err != nil {
			return false
		}
		if p, err = strconv.Atoi(params[3]); err != nil {
			return false
		}
	} else if len(params) != 1 {
		return false
	}
	if n <= 1 || n > maxScryptN || r <= 0 || r > maxScryptR || p <= 0 || p > maxScryptP {
		return false
	}
	if 128*int64(n)*int64(r) > maxScryptMemory {
		return false
	}
	want, err := hex.DecodeString(hexKey)
	if err != nil || len(want) == 0 || len(want) > maxKeyLen {
		return false
	}
	got, err := scrypt.Key([]byte(plain), []byte(salt), n, r, p, len(want))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
