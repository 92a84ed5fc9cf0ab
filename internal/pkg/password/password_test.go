package password

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	for _, plain := range []string{"secret1", "correct horse battery staple", "ünïcødé", ""} {
		digest, err := Hash(plain)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$"))
		assert.True(t, Verify(plain, digest), "plain %q", plain)
		assert.False(t, Verify(plain+"x", digest), "plain %q", plain)
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("secret1")
	require.NoError(t, err)
	b, err := Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformedDigests(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plaintext", "secret1"},
		{"argon2 missing parts", "$argon2id$v=19$m=65536,t=1,p=2$c2FsdA"},
		{"argon2 bad version", "$argon2id$v=1$m=65536,t=1,p=2$c2FsdHNhbHQ$a2V5"},
		{"argon2 zero params", "$argon2id$v=19$m=0,t=0,p=0$c2FsdHNhbHQ$a2V5"},
		{"argon2 bad base64", "$argon2id$v=19$m=65536,t=1,p=2$!!!$a2V5"},
		{"scrypt no salt", "scrypt:32768:8:1"},
		{"scrypt bad hex", "scrypt:32768:8:1$salt$zz"},
		{"scrypt bad params", "scrypt:x:8:1$salt$abcd"},
		{"scrypt huge n", "scrypt:2147483648:8:1$salt$abcd"},
		{"bcrypt truncated", "$2a$10$short"},
		{"argon2 huge memory", "$argon2id$v=19$m=8388608,t=1,p=1$c2FsdHNhbHQ$a2V5"},
		{"argon2 many passes", "$argon2id$v=19$m=65536,t=11,p=1$c2FsdHNhbHQ$a2V5"},
		{"argon2 long key", "$argon2id$v=19$m=65536,t=1,p=1$c2FsdHNhbHQ$" + b64.EncodeToString(make([]byte, 65))},
		{"scrypt huge r", "scrypt:1048576:64:1$salt$00"},
		{"scrypt huge p", "scrypt:1024:8:17$salt$00"},
		{"scrypt memory over cap", "scrypt:1048576:8:1$salt$00"},
		{"scrypt long key", "scrypt:1024:8:1$salt$" + strings.Repeat("00", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, Verify("secret1", tt.digest))
			})
		})
	}
}

func TestVerifyWerkzeugScrypt(t *testing.T) {
	// Small N keeps the test fast; the format is what matters.
	key, err := scrypt.Key([]byte("secret1"), []byte("AbCdEfGh"), 1024, 8, 1, 64)
	require.NoError(t, err)
	digest := "scrypt:1024:8:1$AbCdEfGh$" + hex.EncodeToString(key)

	assert.True(t, Verify("secret1", digest))
	assert.False(t, Verify("secret2", digest))
}

func TestVerifyBcrypt(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, Verify("secret1", string(digest)))
	assert.False(t, Verify("secret2", string(digest)))
}

func TestVerifyAcceptsWerkzeugDefaultsUnderCaps(t *testing.T) {
	// werkzeug's default scrypt:32768:8:1 needs 32 MiB
	key, err := scrypt.Key([]byte("secret1"), []byte("salt"), 32768, 8, 1, 64)
	require.NoError(t, err)
	assert.True(t, Verify("secret1", "scrypt:32768:8:1$salt$"+hex.EncodeToString(key)))
}
