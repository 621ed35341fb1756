package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are tried in order by LoadEnvFile.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFile loads KEY=VALUE pairs from the first .env file found in dir.
// Variables already present in the process environment are not overwritten.
// It returns the file that was loaded, or an error when none exist.
func LoadEnvFile(dir string) (string, error) {
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", errors.New("no .env file found")
}
