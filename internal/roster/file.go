package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads rosters from a JSON file: an array of FantasyTeam
// objects. This is the file the league's sheet exporter produces.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Teams loads and decodes the roster file.
func (s *FileSource) Teams(ctx context.Context) ([]FantasyTeam, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var teams []FantasyTeam
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("decoding roster file %s: %w", s.Path, err)
	}
	for i := range teams {
		if err := teams[i].Validate(); err != nil {
			return nil, fmt.Errorf("roster file %s: %w", s.Path, err)
		}
	}
	return teams, nil
}

// Static is a fixed in-memory roster source.
type Static []FantasyTeam

// Teams returns the fixed rosters.
func (s Static) Teams(ctx context.Context) ([]FantasyTeam, error) {
	return s, nil
}
