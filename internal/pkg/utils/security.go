package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"photodoc-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 4096
	pbkdf2KeyLength  = 32
)

// HashPassword derives a deterministic hex-encoded PBKDF2-SHA256 hash. The
// salt is derived from the username so that the same credentials always
// produce the same hash, which is what the constant-time comparison below
// operates on.
func HashPassword(username, password string) string {
	salt := sha256.Sum256([]byte("photodoc-credential:" + username))
	key := pbkdf2.Key([]byte(password), salt[:], pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// SecureCompare reports whether claimed equals stored without leaking the
// position of the first mismatch: every byte of the claimed value is
// visited regardless of earlier differences.
func SecureCompare(claimed, stored string) bool {
	var mismatch byte
	if len(claimed) != len(stored) {
		mismatch = 1
	}
	for i := 0; i < len(claimed); i++ {
		var other byte
		if i < len(stored) {
			other = stored[i]
		}
		mismatch |= claimed[i] ^ other
	}
	return mismatch == 0
}

func GenerateJWT(sessionID, secret string, expTime time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(expTime).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}

	return tokenString, nil
}

func ParseJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.ErrTokenInvalidOrExpired(nil)
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionID, ok := claims["session_id"].(string); ok {
			return sessionID, nil
		}
	}

	return "", exceptions.ErrTokenInvalidOrExpired(nil)
}
