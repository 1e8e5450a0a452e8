package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// Pepper returns the secret mixed into every password hash. It is empty until
// LoadPepper succeeds, which keeps unit tests free of filesystem state.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// LoadPepper reads the pepper from file, generating and persisting a new one
// when the file does not exist yet. Losing this file invalidates every stored
// password hash.
func LoadPepper(file string) error {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("create pepper dir: %w", err)
	}

	raw, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		buf := make([]byte, keyLength)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate pepper: %w", err)
		}
		raw = []byte(base64.RawURLEncoding.EncodeToString(buf))
		if err := os.WriteFile(file, raw, 0o600); err != nil {
			return fmt.Errorf("write pepper: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read pepper: %w", err)
	}

	value := strings.TrimSpace(string(raw))
	if value == "" {
		return fmt.Errorf("pepper file %s is empty", file)
	}

	pepperMu.Lock()
	pepper = value
	pepperMu.Unlock()
	return nil
}
