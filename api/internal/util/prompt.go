package util

import (
	"fmt"
	"os"
	"strings"
)

// LoadPrompt reads a persona/system prompt from path. An empty path
// yields "" so callers fall back to the built-in text.
func LoadPrompt(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", path, err)
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", fmt.Errorf("prompt %q is empty", path)
	}
	return s, nil
}
