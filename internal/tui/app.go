package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cloudstream/internal/domain"
	"cloudstream/internal/service"
	"cloudstream/internal/tui/styles"
)

// inputMode tracks what the text input is currently capturing
type inputMode int

const (
	inputNone inputMode = iota
	inputFilter
	inputSearch
)

// Model is the main Bubble Tea model for the application
type Model struct {
	repo     domain.DriveRepository
	history  *service.HistoryService
	search   *service.SearchService
	nav      *service.Navigator
	playback *service.PlaybackService
	session  domain.Session

	keys    KeyMap
	spinner spinner.Model
	input   textinput.Model
	mode    inputMode

	width  int
	height int

	loading     bool
	errText     string
	filterQuery string

	records []domain.FileRecord  // current remote listing
	items   []domain.DisplayItem // composed display list
	visible []int                // filtered indexes into items
	cursor  int
	quota   *domain.Quota
}

// NewModel creates the TUI model wired to the services.
func NewModel(
	repo domain.DriveRepository,
	history *service.HistoryService,
	search *service.SearchService,
	nav *service.Navigator,
	playback *service.PlaybackService,
	session domain.Session,
) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	input := textinput.New()
	input.CharLimit = 128

	return &Model{
		repo:     repo,
		history:  history,
		search:   search,
		nav:      nav,
		playback: playback,
		session:  session,
		keys:     DefaultKeyMap(),
		spinner:  sp,
		input:    input,
	}
}

// Init kicks off the initial root listing and quota fetch.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.spinner.Tick,
		m.loadListingCmd(m.nav.Mode(), m.nav.CurrentFolderID()),
		m.loadQuotaCmd(),
	)
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ListingLoadedMsg:
		// Stale replies from rapid navigation lose: only the listing for
		// the current position is adopted.
		if msg.Mode != m.nav.Mode() || msg.FolderID != m.nav.CurrentFolderID() {
			return m, nil
		}
		m.loading = false
		m.errText = ""
		m.records = msg.Records
		m.recompose()
		return m, nil

	case SearchDoneMsg:
		m.loading = false
		m.errText = ""
		m.recompose()
		return m, nil

	case QuotaLoadedMsg:
		m.quota = msg.Quota
		return m, nil

	case PlaybackStartedMsg:
		// History was seeded by the playback service; refresh progress.
		m.recompose()
		return m, nil

	case ErrMsg:
		m.loading = false
		m.errText = msg.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		return m.openSelected()

	case key.Matches(msg, m.keys.Back):
		if m.nav.Mode() == domain.ViewBrowse && !m.nav.AtRoot() {
			m.nav.Back()
			return m, m.reload()
		}

	case key.Matches(msg, m.keys.Root):
		m.nav.GoToRoot()
		return m, m.reload()

	case key.Matches(msg, m.keys.Browse):
		m.nav.SwitchView(domain.ViewBrowse)
		return m, m.reload()

	case key.Matches(msg, m.keys.History):
		m.nav.SwitchView(domain.ViewHistory)
		m.records = nil
		m.recompose()

	case key.Matches(msg, m.keys.Shared):
		m.nav.SwitchView(domain.ViewShared)
		return m, m.reload()

	case key.Matches(msg, m.keys.Search):
		if m.nav.Mode() != domain.ViewHistory {
			m.mode = inputSearch
			m.input.Placeholder = "Smart search..."
			m.input.SetValue("")
			m.input.Focus()
		}

	case key.Matches(msg, m.keys.Filter):
		m.mode = inputFilter
		m.input.Placeholder = "Filter..."
		m.input.SetValue(m.filterQuery)
		m.input.Focus()
	}

	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = inputNone
		m.input.Blur()
		m.filterQuery = ""
		m.recompose()
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := m.input.Value()
		wasSearch := m.mode == inputSearch
		m.mode = inputNone
		m.input.Blur()
		if wasSearch {
			if strings.TrimSpace(value) == "" {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.runSearchCmd(value))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == inputFilter {
		m.filterQuery = m.input.Value()
		m.recompose()
	}
	return m, cmd
}

// openSelected drills into a folder or starts playback.
func (m *Model) openSelected() (tea.Model, tea.Cmd) {
	item, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch item.Kind {
	case domain.KindFolder:
		// Shortcuts navigate to their target folder, not the shortcut id.
		m.nav.EnterFolder(item.PlayID, item.Name)
		m.filterQuery = ""
		return m, m.reload()
	case domain.KindVideo:
		return m, m.playCmd(item)
	}
	return m, nil
}

// reload fetches the listing for the current navigation position.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	m.errText = ""
	m.records = nil
	m.recompose()
	return tea.Batch(
		m.spinner.Tick,
		m.loadListingCmd(m.nav.Mode(), m.nav.CurrentFolderID()),
	)
}

// recompose re-derives the display list from current state.
func (m *Model) recompose() {
	remote := m.records
	var refined map[string]struct{}

	if state := m.search.State(); state.Active() && m.nav.Mode() != domain.ViewHistory {
		remote = state.RemoteMatches
		refined = state.RefinedIDs
	}

	m.items = service.ComposeDisplayList(m.nav.Mode(), remote, m.history.List(), refined)
	m.visible = filterItems(m.items, m.filterQuery)
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

// selected returns the display item under the cursor.
func (m *Model) selected() (domain.DisplayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return domain.DisplayItem{}, false
	}
	return m.items[m.visible[m.cursor]], true
}

// recordFor finds the underlying remote record for a display row.
func (m *Model) recordFor(id string) (domain.FileRecord, bool) {
	for _, rec := range m.records {
		if rec.ID == id {
			return rec, true
		}
	}
	for _, rec := range m.search.State().RemoteMatches {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.FileRecord{}, false
}

// View renders the application
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("\n  %s Loading...\n", m.spinner.View()))
	case len(m.visible) == 0:
		b.WriteString("\n" + styles.DimStyle.Render("  No files found") + "\n")
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

func (m *Model) viewHeader() string {
	title := styles.TitleStyle.Render("CloudStream")
	mode := styles.AccentStyle.Render(m.nav.Mode().String())

	crumbs := "My Drive"
	for _, c := range m.nav.Breadcrumbs() {
		crumbs += " / " + c.Name
	}

	who := ""
	if m.session.User != nil {
		who = styles.DimStyle.Render(m.session.User.Email)
	}

	left := fmt.Sprintf("%s  %s  %s", title, mode, styles.SubtitleStyle.Render(crumbs))
	if who == "" {
		return left
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + who
}

func (m *Model) viewList() string {
	var b strings.Builder

	for row, idx := range m.visible {
		item := m.items[idx]
		line := fmt.Sprintf("%s %s", kindGlyph(item.Kind), item.Name)

		if item.SizeLabel != "" {
			line += styles.DimStyle.Render("  " + item.SizeLabel)
		}
		if item.Kind == domain.KindVideo && item.HasProgress {
			if pct := item.ProgressPercent(); pct > 0 {
				line += styles.ProgressStyle.Render(fmt.Sprintf("  %s %d%%", progressBar(pct), pct))
			}
		}

		if row == m.cursor {
			b.WriteString(styles.SelectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) viewFooter() string {
	if m.mode != inputNone {
		return m.input.View()
	}

	var parts []string
	if m.errText != "" {
		parts = append(parts, styles.ErrorStyle.Render(m.errText))
	}
	if state := m.search.State(); state.Active() {
		n := len(state.RemoteMatches)
		if state.RefinedIDs != nil {
			n = len(state.RefinedIDs)
		}
		parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("search %q: %d results", state.Query, n)))
	}
	if m.quota != nil && m.nav.Mode() == domain.ViewBrowse && m.nav.AtRoot() {
		parts = append(parts, m.viewQuota())
	}
	parts = append(parts, styles.DimStyle.Render("1 browse · 2 history · 3 shared · s search · / filter · q quit"))

	return strings.Join(parts, "\n")
}

// viewQuota renders the storage stat with its illustrative category split.
func (m *Model) viewQuota() string {
	bd := m.quota.Breakdown()
	return styles.SubtitleStyle.Render(fmt.Sprintf(
		"Storage %s of %s (%d%%)  video %d%% · images %d%% · audio %d%% · other %d%%",
		domain.FormatBytes(m.quota.UsedBytes), domain.FormatBytes(m.quota.TotalBytes),
		bd.Percent, bd.Video, bd.Images, bd.Audio, bd.Other,
	))
}

func kindGlyph(kind domain.FileKind) string {
	switch kind {
	case domain.KindFolder:
		return styles.AccentStyle.Render(styles.FolderChar)
	case domain.KindVideo:
		return styles.ProgressStyle.Render(styles.VideoChar)
	case domain.KindImage:
		return styles.SubtitleStyle.Render(styles.ImageChar)
	default:
		return styles.DimStyle.Render(styles.DocumentChar)
	}
}

// progressBar renders a ten-cell progress bar for a percentage.
func progressBar(pct int) string {
	filled := pct / 10
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("■", filled) + strings.Repeat("·", 10-filled) + "]"
}
