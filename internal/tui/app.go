package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thunderx/thunder/internal/page"
	"github.com/thunderx/thunder/internal/reveal"
	"github.com/thunderx/thunder/internal/service"
	"github.com/thunderx/thunder/internal/tui/styles"
)

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second
	wheelStep     = 3
	headerHeight  = 1
)

// Opener opens an external URL
type Opener interface {
	Open(url string) error
}

// Options wires the model to its collaborators
type Options struct {
	Controller    *page.Controller
	Beacon        *service.Beacon
	Opener        Opener
	InstagramURL  string
	PriorityLabel string
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Collaborators
	Controller    *page.Controller
	Session       *page.Session
	Beacon        *service.Beacon
	Opener        Opener
	InstagramURL  string
	PriorityLabel string
	Logger        *slog.Logger

	// Document
	lines   []string
	regions map[string]reveal.Bounds
	offset  int

	// Filter
	filter    textinput.Model
	filtering bool

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowHelp     bool
}

// NewModel mounts a page session and creates the application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "filter products..."
	ti.CharLimit = 64
	ti.Prompt = "/"
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Model{
		Controller:    opts.Controller,
		Session:       opts.Controller.Mount(),
		Beacon:        opts.Beacon,
		Opener:        opts.Opener,
		InstagramURL:  opts.InstagramURL,
		PriorityLabel: opts.PriorityLabel,
		Logger:        logger,
		filter:        ti,
	}
}

// Init starts the catalog load of the mounted session
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.Session),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelStep)
		}
		return m, nil

	case TickMsg:
		m.SpinnerFrame++
		if m.Session.State().Pending() {
			m.refresh()
		}
		return m, TickCmd(tickInterval)

	case CatalogLoadedMsg:
		if msg.SessionID != m.Session.ID() {
			m.Logger.Debug("discarding catalog result of unmounted session", "session", msg.SessionID)
			return m, nil
		}
		if m.Session.Apply(msg.Result) && msg.Result.Err != nil {
			m.StatusMsg = "Catalog unavailable"
			m.StatusIsErr = true
		}
		m.refresh()
		return m, nil

	case EngagedMsg:
		m.StatusMsg = "Opened " + msg.Target
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	case LinkOpenedMsg:
		m.StatusMsg = "Opened " + msg.Target
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.Logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTimeout)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.Controller.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.refresh()

	case key.Matches(msg, Keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, Keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, Keys.HalfUp):
		m.scrollBy(-m.bodyHeight() / 2)
	case key.Matches(msg, Keys.HalfDown):
		m.scrollBy(m.bodyHeight() / 2)
	case key.Matches(msg, Keys.PageUp):
		m.scrollBy(-m.bodyHeight())
	case key.Matches(msg, Keys.PageDown):
		m.scrollBy(m.bodyHeight())
	case key.Matches(msg, Keys.Home):
		m.scrollTo(0)
	case key.Matches(msg, Keys.End):
		m.scrollTo(len(m.lines))

	case key.Matches(msg, Keys.Telegram):
		m.StatusMsg = "Opening Telegram..."
		m.StatusIsErr = false
		return m, EngageCmd(m.Beacon)

	case key.Matches(msg, Keys.Instagram):
		if m.InstagramURL == "" {
			return m, nil
		}
		return m, OpenLinkCmd(m.Opener, m.InstagramURL, m.Logger)

	case key.Matches(msg, Keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		m.refresh()
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refresh()
		}

	case key.Matches(msg, Keys.Reload):
		return m.reload()
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		m.refresh()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// reload unmounts the current session and mounts a fresh one
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.Session = m.Controller.Mount()
	m.offset = 0
	m.StatusMsg = "Reloading..."
	m.StatusIsErr = false
	m.refresh()
	return m, tea.Batch(LoadCatalogCmd(m.Session), ClearStatusCmd(statusTimeout))
}

func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.offset + delta)
}

func (m *Model) scrollTo(offset int) {
	m.offset = offset
	m.clampOffset()
	m.Session.Scroll(m.offset, m.bodyHeight())
	m.rerender()
}

func (m *Model) clampOffset() {
	maxOffset := max(len(m.lines)-m.bodyHeight(), 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

func (m Model) bodyHeight() int {
	return max(m.Height-headerHeight-lipgloss.Height(m.footer()), 1)
}

func (m Model) pageData() PageData {
	query := m.filter.Value()
	return PageData{
		State:         m.Session.State(),
		Split:         m.Session.Matching(query),
		Reveals:       m.Session.Reveals(),
		Query:         query,
		PriorityLabel: m.PriorityLabel,
		Width:         m.Width,
		SpinnerFrame:  m.SpinnerFrame,
	}
}

// refresh renders the page, publishes its layout and viewport to the session,
// and renders again if that revealed a section.
func (m *Model) refresh() {
	if !m.Ready {
		return
	}
	m.rerender()
	m.Session.UpdateLayout(m.regions)
	m.clampOffset()
	m.Session.Scroll(m.offset, m.bodyHeight())
	m.rerender()
}

func (m *Model) rerender() {
	if !m.Ready {
		return
	}
	r := RenderPage(m.pageData())
	m.lines = r.Lines
	m.regions = r.Regions
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	height := m.bodyHeight()
	end := min(m.offset+height, len(m.lines))
	body := make([]string, 0, height)
	if m.offset < end {
		body = append(body, m.lines[m.offset:end]...)
	}
	for len(body) < height {
		body = append(body, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(m.Width),
		strings.Join(body, "\n"),
		m.footer(),
	)
}

func (m Model) footer() string {
	if m.filtering {
		return m.filter.View()
	}
	if m.ShowHelp {
		return renderFullHelp(Keys)
	}

	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	return renderShortHelp(Keys)
}

func renderShortHelp(k KeyMap) string {
	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		parts = append(parts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	return styles.StatusBarStyle.Render(" " + strings.Join(parts, styles.HelpDescStyle.Render(" • ")))
}

func renderFullHelp(k KeyMap) string {
	var columns []string
	for _, group := range k.FullHelp() {
		rows := make([]string, 0, len(group))
		for _, b := range group {
			rows = append(rows, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
		}
		columns = append(columns, lipgloss.NewStyle().PaddingLeft(1).PaddingRight(3).Render(strings.Join(rows, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
