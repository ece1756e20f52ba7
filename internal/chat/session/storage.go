package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// AmbiguousIDError is returned when multiple transcripts match a prefix
type AmbiguousIDError struct {
	Prefix  string
	Matches []Transcript
}

func (e *AmbiguousIDError) Error() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Ambiguous transcript ID %q. Multiple matches found:", e.Prefix))
	for _, match := range e.Matches {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s, %d turns)",
			match.GetShortID(),
			match.Model,
			match.CreatedAt.Format("2006-01-02"),
			match.TurnCount()))
	}
	lines = append(lines, "")
	lines = append(lines, "Please use a longer prefix or run 'guidechat sessions list'.")
	return strings.Join(lines, "\n")
}

// GetTranscriptDir returns the directory where transcripts are stored.
// If a config file is used, transcripts are stored in the same directory
// as the config file. Otherwise, defaults to $HOME/.config/guidechat/transcripts
func GetTranscriptDir() (string, error) {
	configFile := viper.ConfigFileUsed()

	if configFile != "" {
		// Use the same directory as the config file
		configDir := filepath.Dir(configFile)

		// Make the path absolute if it's relative
		if !filepath.IsAbs(configDir) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("failed to get current working directory: %w", err)
			}
			configDir = filepath.Join(cwd, configDir)
		}

		return filepath.Join(configDir, "transcripts"), nil
	}

	// Fallback to default location
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "guidechat", "transcripts"), nil
}

// Save writes a transcript to disk.
func Save(t *Transcript) error {
	dir, err := GetTranscriptDir()
	if err != nil {
		return err
	}

	// Create transcript directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize transcript: %w", err)
	}

	// Write to file (full UUID as filename)
	file := filepath.Join(dir, t.ID+".json")
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}

	return nil
}

// Load reads a transcript from disk by full ID.
func Load(id string) (*Transcript, error) {
	dir, err := GetTranscriptDir()
	if err != nil {
		return nil, err
	}

	file := filepath.Join(dir, id+".json")
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("transcript not found: %s\n\nRun 'guidechat sessions list' to see saved transcripts.", id)
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript file: %w\n\nThe transcript file may be corrupted.", err)
	}

	return &t, nil
}

// Delete removes a transcript from disk by full ID.
func Delete(id string) error {
	dir, err := GetTranscriptDir()
	if err != nil {
		return err
	}

	file := filepath.Join(dir, id+".json")
	if err := os.Remove(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("transcript not found: %s", id)
		}
		return fmt.Errorf("failed to delete transcript file: %w", err)
	}

	return nil
}

// List returns all transcripts sorted by UpdatedAt (newest first).
func List() ([]Transcript, error) {
	dir, err := GetTranscriptDir()
	if err != nil {
		return nil, err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	var transcripts []Transcript
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		// Extract ID from filename (remove .json extension)
		id := strings.TrimSuffix(entry.Name(), ".json")
		t, err := Load(id)
		if err != nil {
			// Skip corrupted transcript files
			continue
		}
		transcripts = append(transcripts, *t)
	}

	// Sort by UpdatedAt (newest first)
	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].UpdatedAt.After(transcripts[j].UpdatedAt)
	})

	return transcripts, nil
}

// FindByPrefix finds a transcript by short ID prefix (minimum 4 characters).
// Returns AmbiguousIDError if multiple matches are found.
// Special case: "latest" returns the most recently updated transcript.
func FindByPrefix(prefix string) (*Transcript, error) {
	if prefix == "latest" {
		return GetLatest()
	}

	// Validate minimum prefix length
	if len(prefix) < 4 {
		return nil, fmt.Errorf("transcript ID prefix must be at least 4 characters (got %d)", len(prefix))
	}

	// Check if it's a full UUID (36 characters with 4 dashes)
	if len(prefix) == 36 && strings.Count(prefix, "-") == 4 {
		return Load(prefix)
	}

	transcripts, err := List()
	if err != nil {
		return nil, err
	}

	var matches []Transcript
	for _, t := range transcripts {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("transcript not found: %s\n\nRun 'guidechat sessions list' to see saved transcripts.", prefix)
	}

	if len(matches) > 1 {
		return nil, &AmbiguousIDError{
			Prefix:  prefix,
			Matches: matches,
		}
	}

	return &matches[0], nil
}

// GetLatest returns the most recently updated transcript.
func GetLatest() (*Transcript, error) {
	transcripts, err := List()
	if err != nil {
		return nil, err
	}

	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no transcripts found\n\nStart a conversation with: guidechat chat")
	}

	// Already sorted by UpdatedAt (newest first)
	return &transcripts[0], nil
}
