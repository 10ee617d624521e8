package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func argonConfig() config.PasswordConfig {
	return config.PasswordConfig{
		Algorithm:        security.AlgorithmArgon2id,
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cases := map[string]config.PasswordConfig{
		"bcrypt":   {Algorithm: security.AlgorithmBcrypt, BcryptCost: bcrypt.MinCost},
		"argon2id": argonConfig(),
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			hash, err := security.HashPassword("very-secure-password", cfg)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			assert.NotContains(t, hash, "very-secure-password")

			ok, err := security.VerifyPassword("very-secure-password", hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = security.VerifyPassword("bogus-password", hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHashPasswordDefaultsToBcrypt(t *testing.T) {
	hash, err := security.HashPassword("pw", config.PasswordConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash prefix %q", hash)
}

func TestHashPasswordIsSalted(t *testing.T) {
	cfg := config.PasswordConfig{BcryptCost: bcrypt.MinCost}
	first, err := security.HashPassword("same", cfg)
	require.NoError(t, err)
	second, err := security.HashPassword("same", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashPasswordRejectsEmptyAndUnknownAlgorithm(t *testing.T) {
	_, err := security.HashPassword("", config.PasswordConfig{})
	assert.Error(t, err)

	_, err = security.HashPassword("pw", config.PasswordConfig{Algorithm: "md5"})
	assert.Error(t, err)
}

func TestVerifyPasswordAcceptsEitherAlgorithm(t *testing.T) {
	argonHash, err := security.HashPassword("pw", argonConfig())
	require.NoError(t, err)

	ok, err := security.VerifyPassword("pw", argonHash)
	require.NoError(t, err)
	assert.True(t, ok, "argon2id hashes stay verifiable after switching to bcrypt")
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, encoded := range []string{"not-a-hash", "$argon2id$v=19$m=x$salt$hash", "$2a$10$short"} {
		_, err := security.VerifyPassword("irrelevant", encoded)
		assert.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}
}
