// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// privateKey and publicKey are used for signing and verifying JWT tokens.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// tokenExpireTimeSec indicates how many seconds until JWT expiration (0 => never).
	tokenExpireTimeSec int
)

// parseTokenExpireTime reads a duration such as "72h"; "never", "0" or "" mean no expiry.
func parseTokenExpireTime(duration string) error {
	if duration == "never" || duration == "0" || duration == "" {
		tokenExpireTimeSec = 0
		return nil
	}
	d, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("failed to parse token expire time: %w", err)
	}
	tokenExpireTimeSec = int(d.Seconds())
	return nil
}

// Init generates a fresh ed25519 key pair at runtime and sets the token expiration.
// Tokens signed by a previous process will not verify.
func Init(tokenExpire string) error {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return parseTokenExpireTime(tokenExpire)
}

// InitFromPath reads ed25519 private/public keys from file and sets the token expiration.
// privatePath may be empty for a verify-only deployment.
func InitFromPath(privatePath, publicPath, tokenExpire string) error {
	publicKeyData, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("failed to read public key file: %w", err)
	}
	if len(publicKeyData) != ed25519.PublicKeySize {
		return fmt.Errorf("public key file %s: want %d bytes, got %d", publicPath, ed25519.PublicKeySize, len(publicKeyData))
	}
	publicKey = ed25519.PublicKey(publicKeyData)

	privateKey = nil
	if privatePath != "" {
		privateKeyData, err := os.ReadFile(privatePath)
		if err != nil {
			return fmt.Errorf("failed to read private key file: %w", err)
		}
		if len(privateKeyData) != ed25519.PrivateKeySize {
			return fmt.Errorf("private key file %s: want %d bytes, got %d", privatePath, ed25519.PrivateKeySize, len(privateKeyData))
		}
		privateKey = ed25519.PrivateKey(privateKeyData)
	}
	return parseTokenExpireTime(tokenExpire)
}

// CreateJWT creates a signed JWT token with "sub" = userID and, unless tokens
// never expire, an "exp" claim.
func CreateJWT(userID uuid.UUID) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("no signing key loaded")
	}
	claims := jwt.MapClaims{
		"sub": userID.String(),
	}
	if tokenExpireTimeSec > 0 {
		claims["exp"] = time.Now().Add(time.Duration(tokenExpireTimeSec) * time.Second).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// AuthenticateJWT verifies a JWT string and returns the user id in its "sub" claim.
func AuthenticateJWT(tokenString string) (uuid.UUID, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid jwt claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing sub in jwt")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in jwt: %w", err)
	}
	return userID, nil
}
