package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/showdeck/showdeck/internal/media"
)

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeLibrary(t, `[
		{
			"title": "Cosmos",
			"type": "tv",
			"folderId": "local-cosmos",
			"localPath": "/media/cosmos",
			"cast": ["Carl Sagan"],
			"episodes": [
				{"name": "cosmos-e1.mkv", "title": "The Shores of the Cosmic Ocean", "season": 1, "episode": 1, "localPath": "/media/cosmos/e1.mkv"},
				{"name": "cosmos-e2.mkv", "localPath": "/media/cosmos/e2.mkv"}
			]
		}
	]`)

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(lib.Entries) != 1 {
		t.Fatalf("Load() entries = %d, want 1", len(lib.Entries))
	}

	entry, ok := lib.Find("cosmos")
	if !ok {
		t.Fatal("Find(cosmos) = false, want case-insensitive match")
	}
	if entry.FolderID != "local-cosmos" || len(entry.Episodes) != 2 {
		t.Errorf("Find(cosmos) = %+v, want folder local-cosmos with 2 episodes", entry)
	}
}

func TestLoadMissingFile(t *testing.T) {
	lib, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v, want nil", err)
	}
	if len(lib.Entries) != 0 {
		t.Errorf("Load(missing) entries = %d, want 0", len(lib.Entries))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v, want nil", err)
	}
	if len(lib.Entries) != 0 {
		t.Errorf("Load(\"\") entries = %d, want 0", len(lib.Entries))
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeLibrary(t, "[not json")
	if _, err := Load(path); err == nil {
		t.Error("Load(invalid) error = nil, want error")
	}
}

func TestFindUnknownTitle(t *testing.T) {
	lib := &Library{Entries: []Entry{{Title: "Cosmos"}}}
	if _, ok := lib.Find("The Wire"); ok {
		t.Error("Find(The Wire) = true, want false")
	}
}

func TestEpisodeRecords(t *testing.T) {
	entry := &Entry{
		Title: "Cosmos",
		Episodes: []EpisodeDecl{
			{Name: "cosmos-e1.mkv", Title: "The Shores of the Cosmic Ocean", Season: 1, Episode: 1, LocalPath: "/media/cosmos/e1.mkv"},
			{Name: "cosmos-e2.mkv", LocalPath: "/media/cosmos/e2.mkv"},
		},
	}

	got := entry.EpisodeRecords()
	want := []*media.Episode{
		{
			ID: "local-1", Name: "cosmos-e1.mkv", Title: "The Shores of the Cosmic Ocean",
			SeasonNumber: 1, EpisodeNumber: 1, EpisodeKnown: true, LocalPath: "/media/cosmos/e1.mkv",
		},
		{
			ID: "local-2", Name: "cosmos-e2.mkv", Title: "cosmos e2",
			SeasonNumber: 1, EpisodeNumber: 2, EpisodeKnown: true, LocalPath: "/media/cosmos/e2.mkv",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EpisodeRecords() mismatch (-want +got):\n%s", diff)
	}
}
