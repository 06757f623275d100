package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// sessionTokenBytes entropía del token de sesión en claro.
const sessionTokenBytes = 32

// HashSecret hashea un PIN o contraseña con bcrypt.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("auth: secreto vacío")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// MatchSecret compara en tiempo constante el secreto con su hash bcrypt.
func MatchSecret(hash, secret string) bool {
	if hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// newSessionToken genera un token opaco de alta entropía (base64url sin padding).
func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generar token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken hash unidireccional del token de sesión tal como se persiste.
// El token ya tiene 256 bits de entropía, SHA-256 basta y permite búsqueda por igualdad.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
