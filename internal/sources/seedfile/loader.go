// Package seedfile loads a local bookmarks.yaml that pins rooms the client
// always wants bookmarked. Seeds are applied through the regular add path
// after the initial fetch, so a record already on the server wins.
package seedfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the seed bookmarks file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file. Entries without a jid are dropped
// (one bad entry must not discard the rest).
func (l *Loader) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	entries := make([]Entry, 0, len(config.Bookmarks))
	for _, entry := range config.Bookmarks {
		if entry.JID == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
