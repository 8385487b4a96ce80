package page

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/provider"
)

type fakeCatalog struct {
	series     *provider.Series
	seriesErr  error
	searchErr  error
	seasons    map[int][]provider.CatalogEpisode
	seriesIDs  []string
	searches   []string
	seasonErrs map[int]error
}

func (f *fakeCatalog) Name() string { return "fake" }

func (f *fakeCatalog) Series(ctx context.Context, id string) (*provider.Series, error) {
	f.seriesIDs = append(f.seriesIDs, id)
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	return f.series, nil
}

func (f *fakeCatalog) Search(ctx context.Context, title string) (*provider.Series, error) {
	f.searches = append(f.searches, title)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.series, nil
}

func (f *fakeCatalog) SeasonEpisodes(ctx context.Context, id string, season int) ([]provider.CatalogEpisode, error) {
	if err, ok := f.seasonErrs[season]; ok {
		return nil, err
	}
	return f.seasons[season], nil
}

type fakeLister struct {
	files []provider.FileEntry
	err   error
}

func (f *fakeLister) ListFiles(ctx context.Context, folderID string) ([]provider.FileEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.files, nil
}

func gotCatalog() *fakeCatalog {
	return &fakeCatalog{
		series: &provider.Series{ID: "1399", Name: "Game of Thrones", Year: "2011"},
		seasons: map[int][]provider.CatalogEpisode{1: {
			{EpisodeNumber: 1, Name: "Winter Is Coming", Overview: "Ned Stark is torn.", AirDate: "2011-04-17", Rating: 8.9},
			{EpisodeNumber: 2, Name: "The Kingsroad", Overview: "The Starks head south.", AirDate: "2011-04-24", Rating: 8.6},
		}},
	}
}

func TestLoadFullPage(t *testing.T) {
	catalog := gotCatalog()
	lister := &fakeLister{files: []provider.FileEntry{
		{ID: "f2", Name: "GoT.S01E02.mkv", MimeType: "video/x-matroska", Thumbnail: "https://thumb/2"},
		{ID: "f1", Name: "GoT.S01E01.mkv", MimeType: "video/x-matroska", Thumbnail: "https://thumb/1"},
		{ID: "fx", Name: "cover.jpg", MimeType: "image/jpeg"},
	}}
	c := NewController(catalog, lister, nil)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "Game of Thrones", CatalogID: "1399"})

	if state.Series.Name != "Game of Thrones" || state.Series.ID != "1399" {
		t.Errorf("Series = %+v, want resolved Game of Thrones", state.Series)
	}
	if len(state.Episodes) != 2 {
		t.Fatalf("Episodes = %d, want 2 (non-video filtered)", len(state.Episodes))
	}
	if state.Episodes[0].ID != "f1" || state.Episodes[1].ID != "f2" {
		t.Errorf("episode order = %s, %s, want f1, f2", state.Episodes[0].ID, state.Episodes[1].ID)
	}
	if state.Episodes[0].Title != "Winter Is Coming" || !state.Episodes[0].Reconciled {
		t.Errorf("episode 1 = %+v, want reconciled Winter Is Coming", state.Episodes[0])
	}
	if state.Episodes[1].Title != "The Kingsroad" {
		t.Errorf("episode 2 title = %q, want The Kingsroad", state.Episodes[1].Title)
	}
	if state.CurrentID != "f1" {
		t.Errorf("CurrentID = %q, want first episode f1", state.CurrentID)
	}
	if state.Stats.Exact != 2 {
		t.Errorf("Stats.Exact = %d, want 2", state.Stats.Exact)
	}
}

func TestLoadSearchesWhenNoCatalogID(t *testing.T) {
	catalog := gotCatalog()
	c := NewController(catalog, &fakeLister{}, nil)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "game of thrones"})

	if len(catalog.searches) != 1 || catalog.searches[0] != "game of thrones" {
		t.Errorf("searches = %v, want one search for the title", catalog.searches)
	}
	if len(catalog.seriesIDs) != 0 {
		t.Errorf("Series() called with %v, want no id lookups", catalog.seriesIDs)
	}
	if state.Series.ID != "1399" {
		t.Errorf("Series.ID = %q, want 1399 from search", state.Series.ID)
	}
}

func TestLoadDegradesWhenCatalogFails(t *testing.T) {
	catalog := gotCatalog()
	catalog.seriesErr = &provider.ProviderError{Provider: "fake", Code: provider.CodeUnavailable, Message: "down"}
	lister := &fakeLister{files: []provider.FileEntry{
		{ID: "f1", Name: "S01E01.mkv", MimeType: "video/x-matroska"},
	}}
	c := NewController(catalog, lister, nil)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "Game of Thrones", CatalogID: "1399"})

	if state.Series.Name != "Game of Thrones" {
		t.Errorf("Series.Name = %q, want fallback to given title", state.Series.Name)
	}
	if len(state.Episodes) != 1 {
		t.Fatalf("Episodes = %d, want 1 (page loads without catalog)", len(state.Episodes))
	}
	// No series metadata means no canonical list to reconcile against,
	// even though the catalog id was supplied.
	if ep := state.Episodes[0]; ep.Reconciled || ep.Title != "Episode 1" {
		t.Errorf("episode = %+v, want unreconciled record with parsed title", ep)
	}
	if state.Stats.Exact != 0 || state.Stats.Unmatched != 1 {
		t.Errorf("Stats = %+v, want all records unmatched", state.Stats)
	}
}

func TestLoadDegradesWhenListingFails(t *testing.T) {
	lister := &fakeLister{err: errors.New("drive down")}
	c := NewController(gotCatalog(), lister, nil)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "Game of Thrones", CatalogID: "1399"})

	if len(state.Episodes) != 0 {
		t.Errorf("Episodes = %d, want 0 on listing failure", len(state.Episodes))
	}
	if state.CurrentID != "" {
		t.Errorf("CurrentID = %q, want empty", state.CurrentID)
	}
	if state.Series.Name != "Game of Thrones" {
		t.Errorf("Series.Name = %q, header should still resolve", state.Series.Name)
	}
}

func TestLoadUsesLibraryDeclarations(t *testing.T) {
	lib := &library.Library{Entries: []library.Entry{{
		Title: "Cosmos",
		Episodes: []library.EpisodeDecl{
			{Name: "e1.mkv", Title: "The Shores of the Cosmic Ocean", Season: 1, Episode: 1, LocalPath: "/media/e1.mkv"},
		},
	}}}
	lister := &fakeLister{files: []provider.FileEntry{{ID: "remote", Name: "S01E01.mkv", MimeType: "video/x-matroska"}}}
	catalog := &fakeCatalog{series: &provider.Series{ID: "9", Name: "Cosmos"}}
	c := NewController(catalog, lister, lib)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "Cosmos", CatalogID: "9"})

	want := []string{"local-1"}
	var got []string
	for _, ep := range state.Episodes {
		got = append(got, ep.ID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("library declarations should win over listing (-want +got):\n%s", diff)
	}
	if state.Episodes[0].LocalPath != "/media/e1.mkv" {
		t.Errorf("LocalPath = %q, want declaration path", state.Episodes[0].LocalPath)
	}
}

func TestLoadHonorsRequestedEpisode(t *testing.T) {
	lister := &fakeLister{files: []provider.FileEntry{
		{ID: "f1", Name: "S01E01.mkv", MimeType: "video/x-matroska"},
		{ID: "f2", Name: "S01E02.mkv", MimeType: "video/x-matroska"},
	}}
	c := NewController(gotCatalog(), lister, nil)

	state := c.Load(context.Background(), Params{FolderID: "folder123", Title: "Game of Thrones", CatalogID: "1399", EpisodeID: "f2"})
	if state.CurrentID != "f2" {
		t.Errorf("CurrentID = %q, want requested f2", state.CurrentID)
	}

	state = c.Load(context.Background(), Params{FolderID: "folder123", Title: "Game of Thrones", CatalogID: "1399", EpisodeID: "ghost"})
	if state.CurrentID != "f1" {
		t.Errorf("CurrentID = %q, want fallback to first f1", state.CurrentID)
	}
}

func TestLoadNoDependencies(t *testing.T) {
	c := NewController(nil, nil, nil)
	state := c.Load(context.Background(), Params{Title: "Anything"})
	if state.Series.Name != "Anything" || len(state.Episodes) != 0 {
		t.Errorf("Load with no deps = %+v, want bare header", state)
	}
}

type fakeProber struct {
	durations map[string]int
	err       error
	paths     []string
}

func (f *fakeProber) Duration(ctx context.Context, path string) (int, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return 0, f.err
	}
	return f.durations[path], nil
}

type fakeDurationLister struct {
	fakeLister
	durations map[string]int
	ids       []string
}

func (f *fakeDurationLister) FileDuration(ctx context.Context, fileID string) (int, error) {
	f.ids = append(f.ids, fileID)
	return f.durations[fileID], nil
}

func TestEpisodeDurationProbesLocalPath(t *testing.T) {
	prober := &fakeProber{durations: map[string]int{"/media/e1.mkv": 2712}}
	c := NewController(nil, nil, nil)
	c.SetProber(prober)

	ep := &media.Episode{ID: "local-1", LocalPath: "/media/e1.mkv"}
	if got := c.EpisodeDuration(context.Background(), ep); got != 2712 {
		t.Errorf("EpisodeDuration() = %d, want 2712", got)
	}
	// The record itself is never written; callers apply the value on
	// their own goroutine.
	if ep.Duration != 0 {
		t.Errorf("record mutated, Duration = %d, want 0", ep.Duration)
	}

	// A record that already carries a duration is served without probing.
	ep.Duration = 2712
	c.EpisodeDuration(context.Background(), ep)
	if len(prober.paths) != 1 {
		t.Errorf("prober called %d times, want 1", len(prober.paths))
	}
}

func TestEpisodeDurationAsksListerForRemote(t *testing.T) {
	lister := &fakeDurationLister{durations: map[string]int{"f1": 1830}}
	c := NewController(nil, lister, nil)

	ep := &media.Episode{ID: "f1"}
	if got := c.EpisodeDuration(context.Background(), ep); got != 1830 {
		t.Errorf("EpisodeDuration() = %d, want 1830", got)
	}
	if len(lister.ids) != 1 || lister.ids[0] != "f1" {
		t.Errorf("lister asked for %v, want [f1]", lister.ids)
	}
}

func TestEpisodeDurationDegrades(t *testing.T) {
	// Probe failure keeps the record at zero.
	c := NewController(nil, nil, nil)
	c.SetProber(&fakeProber{err: errors.New("no ffprobe")})
	ep := &media.Episode{ID: "local-1", LocalPath: "/media/e1.mkv"}
	if got := c.EpisodeDuration(context.Background(), ep); got != 0 {
		t.Errorf("EpisodeDuration() on probe failure = %d, want 0", got)
	}

	// A lister without duration support yields zero for remote records.
	c = NewController(nil, &fakeLister{}, nil)
	if got := c.EpisodeDuration(context.Background(), &media.Episode{ID: "f1"}); got != 0 {
		t.Errorf("EpisodeDuration() without duration lister = %d, want 0", got)
	}

	if got := c.EpisodeDuration(context.Background(), nil); got != 0 {
		t.Errorf("EpisodeDuration(nil) = %d, want 0", got)
	}
}
