// Package session keeps the command-line history between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the history file created next to the data file.
const FileName = "history.json"

// DefaultPath returns the history file for a book stored at dataPath.
func DefaultPath(dataPath string) string {
	return filepath.Join(filepath.Dir(dataPath), FileName)
}

// SaveHistory writes lines to path, keeping only the newest limit lines.
func SaveHistory(path string, lines []string, limit int) error {
	if len(lines) == 0 {
		// Don't save empty histories
		return DeleteHistory(path)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// LoadHistory reads the lines saved at path, oldest first.
func LoadHistory(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return lines, nil
}

// DeleteHistory removes the history file.
func DeleteHistory(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete history file: %w", err)
	}
	return nil
}
