package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// SHA256Checksummer hashes files with SHA-256.
type SHA256Checksummer struct{}

// Sum returns the lowercase hex SHA-256 of the file at path.
func (SHA256Checksummer) Sum(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- generated artifact path
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
