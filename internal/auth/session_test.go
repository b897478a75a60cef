package auth

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticate(t *testing.T) {
	require.NoError(t, Init("never"))
	user := uuid.New()

	token, err := CreateJWT(user)
	require.NoError(t, err)

	got, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuthenticateRejectsForeignKey(t *testing.T) {
	require.NoError(t, Init("never"))
	token, err := CreateJWT(uuid.New())
	require.NoError(t, err)

	require.NoError(t, Init("never")) // rotate keys
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsExpired(t *testing.T) {
	require.NoError(t, Init("1h"))
	claims := jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(-time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(privateKey)
	require.NoError(t, err)

	_, err = AuthenticateJWT(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsBadSubject(t *testing.T) {
	require.NoError(t, Init("never"))
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.MapClaims{"sub": "alice"}).SignedString(privateKey)
	require.NoError(t, err)

	_, err = AuthenticateJWT(token)
	assert.ErrorContains(t, err, "invalid user id")

	_, err = AuthenticateJWT("not-a-jwt")
	assert.Error(t, err)
}

func TestInitRejectsBadExpiry(t *testing.T) {
	assert.Error(t, Init("eventually"))
}

func TestInitFromPath(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	dir := t.TempDir()
	pubPath := filepath.Join(dir, "jwt.pub")
	privPath := filepath.Join(dir, "jwt.key")
	require.NoError(t, os.WriteFile(pubPath, pub, 0o600))
	require.NoError(t, os.WriteFile(privPath, priv, 0o600))

	require.NoError(t, InitFromPath(privPath, pubPath, "24h"))
	user := uuid.New()
	token, err := CreateJWT(user)
	require.NoError(t, err)
	got, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	// verify-only
	require.NoError(t, InitFromPath("", pubPath, "never"))
	_, err = CreateJWT(user)
	assert.Error(t, err)
	got, err = AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	assert.Error(t, InitFromPath("", filepath.Join(dir, "missing.pub"), "never"))
}

func TestInitFromPathRejectsShortPrivateKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	dir := t.TempDir()
	pubPath := filepath.Join(dir, "jwt.pub")
	privPath := filepath.Join(dir, "jwt.key")
	require.NoError(t, os.WriteFile(pubPath, pub, 0o600))
	require.NoError(t, os.WriteFile(privPath, priv[:ed25519.SeedSize], 0o600))

	assert.Error(t, InitFromPath(privPath, pubPath, "never"))
	_, err = CreateJWT(uuid.New())
	assert.Error(t, err)
}
