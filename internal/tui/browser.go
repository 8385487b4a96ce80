// Package tui renders the detail-page episode browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/showdeck/showdeck/internal/media"
	"github.com/showdeck/showdeck/internal/page"
	"github.com/showdeck/showdeck/internal/session"
	"github.com/showdeck/showdeck/internal/tui/theme"
	"github.com/showdeck/showdeck/internal/watchlist"
)

// PageLoadedMsg delivers a finished page load. The generation lets the
// model discard completions that arrive after a newer load started.
type PageLoadedMsg struct {
	Generation uint64
	State      session.State
}

// WatchlistToggledMsg reports the outcome of a watchlist toggle.
type WatchlistToggledMsg struct {
	On  bool
	Err error
}

// EpisodeDurationMsg delivers a lazily fetched duration for one episode.
type EpisodeDurationMsg struct {
	Generation uint64
	ID         string
	Seconds    int
}

// BrowserModel is the bubbletea model for the episode browser.
type BrowserModel struct {
	controller *page.Controller
	params     page.Params
	view       *session.View
	wl         *watchlist.Watchlist

	theme   theme.Theme
	spinner spinner.Model
	width   int
	height  int
	status  string

	// Cached styles, re-applied with dynamic widths each render.
	headerStyle lipgloss.Style
	statusStyle lipgloss.Style
	panelStyle  lipgloss.Style
	selected    lipgloss.Style
	muted       lipgloss.Style
}

// NewBrowserModel creates a browser for the given page parameters.
func NewBrowserModel(controller *page.Controller, params page.Params, view *session.View, wl *watchlist.Watchlist) *BrowserModel {
	th := theme.Default()
	runewidth.DefaultCondition.EastAsianWidth = false
	runewidth.DefaultCondition.StrictEmojiNeutral = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(th.Colors().Accent)

	return &BrowserModel{
		controller:  controller,
		params:      params,
		view:        view,
		wl:          wl,
		theme:       th,
		spinner:     sp,
		width:       80,
		height:      24,
		headerStyle: th.HeaderStyle(),
		statusStyle: th.StatusBarStyle(),
		panelStyle:  th.PanelStyle(),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(th.Colors().Accent),
		muted:       lipgloss.NewStyle().Foreground(th.Colors().Muted),
	}
}

// Init starts the spinner and the initial page load.
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(), tea.WindowSize())
}

// loadCmd begins a load generation and runs the page controller off
// the UI goroutine.
func (m *BrowserModel) loadCmd() tea.Cmd {
	gen := m.view.BeginLoad()
	controller := m.controller
	params := m.params
	return func() tea.Msg {
		return PageLoadedMsg{
			Generation: gen,
			State:      controller.Load(context.Background(), params),
		}
	}
}

// Update handles Bubble Tea messages (resize, key events, completions).
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k", "p":
			m.view.Prev()
			return m, m.durationCmd()
		case "down", "j", "n":
			m.view.Next()
			return m, m.durationCmd()
		case "a":
			return m, m.toggleWatchlistCmd()
		case "r":
			if !m.view.Loading() {
				m.status = "Reconciling..."
				return m, tea.Batch(m.spinner.Tick, m.loadCmd())
			}
		}

	case PageLoadedMsg:
		if !m.view.Complete(msg.Generation, msg.State) {
			// A newer load superseded this one.
			return m, nil
		}
		stats := msg.State.Stats
		m.status = fmt.Sprintf("%d episodes, %d matched (%d exact, %d fuzzy)",
			stats.Total, stats.Exact+stats.Fuzzy, stats.Exact, stats.Fuzzy)
		return m, m.durationCmd()

	case EpisodeDurationMsg:
		if msg.Generation != m.view.Generation() {
			return m, nil
		}
		if ep, ok := m.view.Episode(msg.ID); ok && msg.Seconds > 0 {
			ep.Duration = msg.Seconds
		}
		return m, nil

	case WatchlistToggledMsg:
		switch {
		case msg.Err != nil:
			m.status = fmt.Sprintf("Watchlist error: %v", msg.Err)
		case msg.On:
			m.status = "Added to watchlist"
		default:
			m.status = "Removed from watchlist"
		}
		return m, nil

	case spinner.TickMsg:
		if m.view.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// durationCmd lazily fetches the selected episode's duration. The
// command works on a snapshot of the record; the shared record is only
// written when the EpisodeDurationMsg is applied in Update.
func (m *BrowserModel) durationCmd() tea.Cmd {
	ep := m.view.Current()
	if ep == nil || ep.Duration > 0 {
		return nil
	}
	gen := m.view.Generation()
	controller := m.controller
	snapshot := *ep
	return func() tea.Msg {
		return EpisodeDurationMsg{
			Generation: gen,
			ID:         snapshot.ID,
			Seconds:    controller.EpisodeDuration(context.Background(), &snapshot),
		}
	}
}

func (m *BrowserModel) toggleWatchlistCmd() tea.Cmd {
	if m.wl == nil {
		return func() tea.Msg {
			return WatchlistToggledMsg{Err: fmt.Errorf("watchlist unavailable")}
		}
	}
	item := watchlist.Item{
		Title:    m.params.Title,
		FolderID: m.params.FolderID,
		Type:     m.params.MediaType,
	}
	if series := m.view.Series(); series != nil {
		if series.Name != "" {
			item.Title = series.Name
		}
		item.Image = series.PosterImage
	}
	wl := m.wl
	return func() tea.Msg {
		on := wl.Toggle(item)
		return WatchlistToggledMsg{On: on, Err: wl.Save()}
	}
}

// View renders header, episode list, detail pane, and status bar.
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerStyle.Width(m.width).Render(m.headerLine()))
	b.WriteString("\n")
	if series := m.view.Series(); series != nil && series.Overview != "" {
		b.WriteString(m.muted.Render(runewidth.Truncate(series.Overview, m.width-2, "…")))
		b.WriteString("\n")
	}

	if m.view.Loading() {
		b.WriteString(fmt.Sprintf("\n %s Loading episodes...\n", m.spinner.View()))
	} else {
		listHeight := m.height - 6
		if listHeight < 3 {
			listHeight = 3
		}
		panels := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(listHeight),
			m.renderDetail(listHeight),
		)
		b.WriteString(panels)
		b.WriteString("\n")
	}

	b.WriteString(m.statusStyle.Width(m.width).Render(m.statusLine()))
	return b.String()
}

func (m *BrowserModel) headerLine() string {
	series := m.view.Series()
	if series == nil {
		return m.params.Title
	}
	parts := []string{series.Name}
	if series.Year != "" {
		parts = append(parts, fmt.Sprintf("(%s)", series.Year))
	}
	if series.Rating > 0 {
		parts = append(parts, starRating(series.Rating, m.theme.Icon("star"), m.theme.Icon("starEmpty")))
	}
	if len(series.Genres) > 0 {
		parts = append(parts, strings.Join(series.Genres, ", "))
	}
	return strings.Join(parts, "  ")
}

// renderList shows a window of the episode list centered on the
// current selection.
func (m *BrowserModel) renderList(height int) string {
	eps := m.view.Episodes()
	listWidth := m.width * 5 / 10
	if listWidth < 20 {
		listWidth = 20
	}

	if len(eps) == 0 {
		return m.panelStyle.Width(listWidth).Render(m.muted.Render("No episodes found"))
	}

	index := m.view.Index()
	start := index - height/2
	if start > len(eps)-height {
		start = len(eps) - height
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(eps) {
		end = len(eps)
	}

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(eps[i], i, listWidth-4, i == index))
	}
	return m.panelStyle.Width(listWidth).Render(strings.Join(rows, "\n"))
}

func (m *BrowserModel) renderRow(ep *media.Episode, position, width int, current bool) string {
	marker := " "
	if ep.Reconciled {
		marker = m.theme.Icon("reconciled")
	}
	row := fmt.Sprintf("%s %-7s %s  %s",
		marker,
		episodeTag(ep, position+1),
		formatDuration(ep.Duration),
		ep.Title,
	)
	row = runewidth.Truncate(row, width, "…")
	if current {
		return m.selected.Render(row)
	}
	return row
}

func (m *BrowserModel) renderDetail(height int) string {
	detailWidth := m.width - m.width*5/10 - m.theme.Spacing().PanelGap
	if detailWidth < 20 {
		detailWidth = 20
	}

	ep := m.view.Current()
	if ep == nil {
		return m.panelStyle.Width(detailWidth).Render("")
	}

	var lines []string
	lines = append(lines, m.theme.PanelTitleStyle().Render(ep.Title))
	if ep.AirDate != "" {
		lines = append(lines, fmt.Sprintf("%s %s", m.theme.Icon("calendar"), ep.AirDate))
	}
	if ep.Rating > 0 {
		lines = append(lines, starRating(ep.Rating, m.theme.Icon("star"), m.theme.Icon("starEmpty")))
	}
	lines = append(lines, fmt.Sprintf("%s %s", m.theme.Icon("clock"), formatDuration(ep.Duration)))
	if ep.StillImage != "" {
		lines = append(lines, m.muted.Render(runewidth.Truncate(ep.StillImage, detailWidth-4, "…")))
	}
	if ep.Overview != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(detailWidth-4).Render(ep.Overview))
	}
	content := strings.Join(lines, "\n")
	return m.panelStyle.Width(detailWidth).Height(height).Render(content)
}

func (m *BrowserModel) statusLine() string {
	help := "↑/↓ select  n/p episode  a watchlist  r reconcile  q quit"
	if m.status == "" {
		return help
	}
	return m.status + "  |  " + help
}
