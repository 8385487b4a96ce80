package session

import (
	"testing"

	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/provider"
)

func loadedView(t *testing.T, currentID string) *View {
	t.Helper()
	v := NewView()
	gen := v.BeginLoad()
	ok := v.Complete(gen, State{
		Series: &provider.Series{ID: "1399", Name: "Game of Thrones"},
		Episodes: []*media.Episode{
			{ID: "f1", Title: "Winter Is Coming", SeasonNumber: 1, EpisodeNumber: 1},
			{ID: "f2", Title: "The Kingsroad", SeasonNumber: 1, EpisodeNumber: 2},
			{ID: "f3", Title: "Lord Snow", SeasonNumber: 1, EpisodeNumber: 3},
		},
		CurrentID: currentID,
	})
	if !ok {
		t.Fatal("Complete() with current generation = false, want true")
	}
	return v
}

func TestNavigationClampsAtBounds(t *testing.T) {
	v := loadedView(t, "")

	if got := v.Current(); got == nil || got.ID != "f1" {
		t.Fatalf("Current() after load = %v, want f1", got)
	}

	v.Next()
	v.Next()
	if got := v.Next(); got.ID != "f3" {
		t.Errorf("Next() past end = %s, want clamp at f3", got.ID)
	}

	v.Prev()
	v.Prev()
	if got := v.Prev(); got.ID != "f1" {
		t.Errorf("Prev() past start = %s, want clamp at f1", got.ID)
	}
}

func TestSelect(t *testing.T) {
	v := loadedView(t, "")

	if !v.Select("f2") {
		t.Fatal("Select(f2) = false, want true")
	}
	if got := v.Current(); got.ID != "f2" {
		t.Errorf("Current() after Select(f2) = %s, want f2", got.ID)
	}

	if v.Select("nope") {
		t.Error("Select(nope) = true, want false")
	}
	if got := v.Current(); got.ID != "f2" {
		t.Errorf("Current() after failed Select = %s, want unchanged f2", got.ID)
	}
}

func TestCompleteHonorsInitialSelection(t *testing.T) {
	v := loadedView(t, "f3")
	if got := v.Current(); got.ID != "f3" {
		t.Errorf("Current() = %s, want initial selection f3", got.ID)
	}
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	v := NewView()
	staleGen := v.BeginLoad()
	currentGen := v.BeginLoad()

	applied := v.Complete(staleGen, State{
		Series:   &provider.Series{Name: "Stale Show"},
		Episodes: []*media.Episode{{ID: "stale"}},
	})
	if applied {
		t.Error("Complete(stale gen) = true, want false")
	}
	if v.Series() != nil {
		t.Errorf("stale completion applied series %v, want nil", v.Series())
	}

	applied = v.Complete(currentGen, State{
		Series:   &provider.Series{Name: "Fresh Show"},
		Episodes: []*media.Episode{{ID: "fresh"}},
	})
	if !applied {
		t.Fatal("Complete(current gen) = false, want true")
	}
	if got := v.Current(); got == nil || got.ID != "fresh" {
		t.Errorf("Current() = %v, want fresh", got)
	}
}

func TestLoadingFlag(t *testing.T) {
	v := NewView()
	if v.Loading() {
		t.Error("Loading() before BeginLoad = true, want false")
	}
	gen := v.BeginLoad()
	if !v.Loading() {
		t.Error("Loading() during load = false, want true")
	}
	v.Complete(gen, State{})
	if v.Loading() {
		t.Error("Loading() after Complete = true, want false")
	}
}

func TestEpisodeLookup(t *testing.T) {
	v := loadedView(t, "")

	ep, ok := v.Episode("f2")
	if !ok || ep.Title != "The Kingsroad" {
		t.Errorf("Episode(f2) = %v, %v, want The Kingsroad, true", ep, ok)
	}
	if _, ok := v.Episode("nope"); ok {
		t.Error("Episode(nope) = true, want false")
	}
}

func TestEmptyViewNavigation(t *testing.T) {
	v := NewView()
	if v.Current() != nil || v.Next() != nil || v.Prev() != nil {
		t.Error("navigation on empty view should return nil")
	}
}
