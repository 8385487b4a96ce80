// Package session holds the live detail-page view: the loaded series,
// its ordered episode records, the current selection, and the
// generation stamp that guards against stale asynchronous loads.
package session

import (
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/provider"
	"github.com/showdeck/showdeck/internal/reconcile"
)

// State is a fully assembled page ready to display.
type State struct {
	Series    *provider.Series
	Episodes  []*media.Episode
	CurrentID string
	Stats     reconcile.Stats
}

// View is the mutable session. All methods are safe for concurrent
// use; loads run on background goroutines while the UI reads.
type View struct {
	mu         sync.Mutex
	generation uint64
	loading    bool

	series   *provider.Series
	episodes []*media.Episode
	index    int
	stats    reconcile.Stats

	// store indexes enriched records by episode ID for O(1) lookup
	// from UI messages.
	store *csmap.CsMap[string, *media.Episode]
}

// NewView creates an empty session view.
func NewView() *View {
	return &View{
		store: csmap.Create[string, *media.Episode](),
	}
}

// BeginLoad marks the start of a new page load and returns its
// generation. Any completion carrying an older generation is stale.
func (v *View) BeginLoad() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.loading = true
	return v.generation
}

// Complete applies a finished load. It reports false and changes
// nothing when gen is no longer the current generation.
func (v *View) Complete(gen uint64, state State) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return false
	}
	v.loading = false
	v.series = state.Series
	v.episodes = state.Episodes
	v.stats = state.Stats

	v.store = csmap.Create[string, *media.Episode]()
	for _, ep := range state.Episodes {
		v.store.Store(ep.ID, ep)
	}

	v.index = 0
	if state.CurrentID != "" {
		for i, ep := range state.Episodes {
			if ep.ID == state.CurrentID {
				v.index = i
				break
			}
		}
	}
	return true
}

// Generation returns the current load generation.
func (v *View) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Series returns the loaded series header, nil before the first load.
func (v *View) Series() *provider.Series {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.series
}

// Episodes returns the ordered episode records.
func (v *View) Episodes() []*media.Episode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.episodes
}

// Stats returns the reconciliation stats of the last completed load.
func (v *View) Stats() reconcile.Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// Current returns the selected episode, nil when the list is empty.
func (v *View) Current() *media.Episode {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.episodes) == 0 {
		return nil
	}
	return v.episodes[v.index]
}

// Index returns the position of the selected episode.
func (v *View) Index() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index
}

// Next advances the selection, clamping at the last episode.
func (v *View) Next() *media.Episode {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.episodes) == 0 {
		return nil
	}
	if v.index < len(v.episodes)-1 {
		v.index++
	}
	return v.episodes[v.index]
}

// Prev moves the selection back, clamping at the first episode.
func (v *View) Prev() *media.Episode {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.episodes) == 0 {
		return nil
	}
	if v.index > 0 {
		v.index--
	}
	return v.episodes[v.index]
}

// Select moves the selection to the episode with the given id. It
// reports false and keeps the selection when the id is unknown.
func (v *View) Select(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, ep := range v.episodes {
		if ep.ID == id {
			v.index = i
			return true
		}
	}
	return false
}

// Episode looks up an enriched record by id.
func (v *View) Episode(id string) (*media.Episode, bool) {
	v.mu.Lock()
	store := v.store
	v.mu.Unlock()
	return store.Load(id)
}
