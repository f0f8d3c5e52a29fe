package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulpit/config"
)

// Small cost parameters keep the test suite fast; the verification path is
// identical to the production 64 MiB / t=3 / p=4 configuration.
func newTestHasher() *argon2Hasher {
	return NewArgon2Hasher(&config.Config{
		Auth: &config.AuthConfig{
			Argon2Memory:      8 * 1024,
			Argon2Time:        1,
			Argon2Parallelism: 1,
		},
	}).(*argon2Hasher)
}

func TestArgon2Hasher_HashProducesPHCString(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("longenough1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))
	assert.NotContains(t, hash, "longenough1")

	// Each call salts independently.
	second, err := hasher.Hash("longenough1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second)
}

func TestArgon2Hasher_VerifyRoundTrip(t *testing.T) {
	hasher := newTestHasher()

	passwords := []string{
		"longenough1",
		"correct horse battery staple",
		"pässwörd-ünïcode-密碼",
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		ok, err := hasher.Verify(hash, password)
		require.NoError(t, err)
		assert.True(t, ok, "expected match for %q", password)

		ok, err = hasher.Verify(hash, password+"x")
		require.NoError(t, err)
		assert.False(t, ok, "expected mismatch for altered %q", password)
	}
}

func TestArgon2Hasher_VerifyAcrossCostParameters(t *testing.T) {
	// A hash carries its own cost parameters, so a hasher configured with
	// different costs still verifies it.
	low := newTestHasher()
	defaults := NewArgon2Hasher(nil)

	hash, err := low.Hash("longenough1")
	require.NoError(t, err)

	ok, err := defaults.Verify(hash, "longenough1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_VerifyMalformedHashIsError(t *testing.T) {
	hasher := newTestHasher()

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA", // wrong variant
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA", // wrong version
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",     // missing parameter
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",                    // bad salt encoding
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",    // zero cost
	}

	for _, hash := range malformed {
		ok, err := hasher.Verify(hash, "longenough1")
		assert.Error(t, err, "expected error for %q", hash)
		assert.False(t, ok)
	}
}

func TestNewArgon2Hasher_Defaults(t *testing.T) {
	hasher := NewArgon2Hasher(nil).(*argon2Hasher)

	assert.Equal(t, uint32(64*1024), hasher.memory)
	assert.Equal(t, uint32(3), hasher.time)
	assert.Equal(t, uint8(4), hasher.parallelism)
}
