package segment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveTranscript writes a clustered transcript as indented JSON, creating
// parent directories.
func SaveTranscript(path string, t *Transcript) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("segment: create dir: %w", err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("segment: marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("segment: write %s: %w", path, err)
	}
	return nil
}

// LoadTranscript reads a clustered transcript back.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("segment: read %s: %w", path, err)
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("segment: parse %s: %w", path, err)
	}
	return &t, nil
}

// LoadLines reads a JSON array of transcript lines for one respondent.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("segment: read %s: %w", path, err)
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("segment: parse %s: %w", path, err)
	}
	return lines, nil
}

// SaveLines writes transcript lines as an indented JSON array.
func SaveLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("segment: create dir: %w", err)
	}
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return fmt.Errorf("segment: marshal lines: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("segment: write %s: %w", path, err)
	}
	return nil
}
