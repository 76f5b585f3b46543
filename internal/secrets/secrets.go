// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory holding one file per
// key. The filename is the key and the trimmed contents are the value, so
// keys never appear in the config file or shell history.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// AnthropicAPIKey names the file holding the key for the claude
// translation provider.
const AnthropicAPIKey = "anthropic-api-key"

// Load returns the secrets found in dir. A missing directory yields an
// empty map. Unreadable files are logged and skipped; a nil logger
// discards the warning.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unreadable secret", "name", name, "error", err)
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			found[name] = value
		}
	}
	return found, nil
}

// Names returns the keys of s in sorted order, for logging which secrets
// were loaded without printing their values.
func Names(s map[string]string) []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
