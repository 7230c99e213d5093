package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers accepted from graph input.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier read from graph input.
//
// The validation rules:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidGraph, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateConfigPath validates a configuration file path.
// Only TOML and JSON files are accepted.
func ValidateConfigPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "config path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "config path contains invalid characters")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".json":
		return nil
	default:
		return New(ErrCodeInvalidPath, "config file must be .toml or .json: %q", path)
	}
}
