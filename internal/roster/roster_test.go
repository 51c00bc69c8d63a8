package roster

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSource_Teams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.json")
	data := `[
		{
			"name": "Dynasty",
			"players": {
				"QB": [{"name": "Patrick Mahomes", "team": "KC", "started": true}],
				"DF": [{"name": "Kansas City", "started": true}],
				"HC": [{"name": "Andy Reid", "started": false}]
			}
		}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	teams, err := NewFileSource(path).Teams(context.Background())
	if err != nil {
		t.Fatalf("Teams error: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Dynasty" {
		t.Fatalf("teams = %+v", teams)
	}

	qbs := teams[0].Players["QB"]
	if len(qbs) != 1 || qbs[0].Name != "Patrick Mahomes" || !qbs[0].Started {
		t.Errorf("QB entries = %+v", qbs)
	}
	if teams[0].StartedCount() != 2 {
		t.Errorf("StartedCount = %d, want 2", teams[0].StartedCount())
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Teams(context.Background())
	if err == nil {
		t.Fatal("expected error for a missing roster file")
	}
}

func TestFileSource_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileSource(path).Teams(context.Background()); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidate_UnknownPosition(t *testing.T) {
	team := FantasyTeam{
		Name: "Dynasty",
		Players: map[string][]Entry{
			"FLEX": {{Name: "Tyreek Hill", Team: "MIA"}},
		},
	}

	err := team.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want error for unknown position")
	}
	if !strings.Contains(err.Error(), "FLEX") {
		t.Errorf("error = %v, want position label named", err)
	}
}

func TestValidate_TooManyEntries(t *testing.T) {
	team := FantasyTeam{
		Name: "Dynasty",
		Players: map[string][]Entry{
			"K": {
				{Name: "Harrison Butker", Team: "KC"},
				{Name: "Justin Tucker", Team: "BAL"},
				{Name: "Jake Elliott", Team: "PHI"},
			},
		},
	}

	err := team.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want error for over-slot position")
	}
	if !strings.Contains(err.Error(), "K") {
		t.Errorf("error = %v, want position named", err)
	}
}

func TestValidate_FullRosterAccepted(t *testing.T) {
	team := FantasyTeam{Name: "Dynasty", Players: map[string][]Entry{}}
	for _, pos := range Positions {
		entries := make([]Entry, SlotsPerPosition[pos])
		team.Players[pos] = entries
	}

	if err := team.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil for a full legal roster", err)
	}
}

func TestFileSource_RejectsOverSlotRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.json")
	data := `[
		{
			"name": "Dynasty",
			"players": {
				"DF": [
					{"name": "Kansas City", "started": true},
					{"name": "Denver", "started": false},
					{"name": "Buffalo", "started": false}
				]
			}
		}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileSource(path).Teams(context.Background())
	if err == nil {
		t.Fatal("expected error for a roster with too many DF entries")
	}
	if !strings.Contains(err.Error(), "Dynasty") {
		t.Errorf("error = %v, want team name named", err)
	}
}
