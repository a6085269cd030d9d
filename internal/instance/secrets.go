package instance

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateSecrets produces a fresh credential set for a new instance.
// Session secret and encryption key are 32 random bytes hex-encoded; the
// database password is a UUID with the hyphens stripped.
func GenerateSecrets() (Secrets, error) {
	session, err := randomHex(32)
	if err != nil {
		return Secrets{}, fmt.Errorf("failed to generate session secret: %w", err)
	}

	encKey, err := randomHex(32)
	if err != nil {
		return Secrets{}, fmt.Errorf("failed to generate encryption key: %w", err)
	}

	return Secrets{
		SessionSecret:    session,
		EncryptionKey:    encKey,
		PostgresPassword: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
