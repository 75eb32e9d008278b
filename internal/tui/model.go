package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rythm/internal/adherence"
	"github.com/julianstephens/rythm/internal/tracker"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateAddSystem
	StateWeeklySync
)

type Model struct {
	tracker    *tracker.Tracker
	state      SessionState
	keys       KeyMap
	help       help.Model
	dashboard  tracker.Dashboard
	review     adherence.Review
	cursor     int
	form       *huh.Form
	systemForm *SystemForm
	syncForm   *SyncForm
	syncWeek   string
	message    string
	err        error
	quitting   bool
	width      int
	height     int
}

func NewModel(t *tracker.Tracker) Model {
	m := Model{
		tracker: t,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateWeek {
		return []key.Binding{m.keys.Tab, m.keys.Prev, m.keys.Next, m.keys.Sync, m.keys.Quit, m.keys.Help}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the dashboard and the review of the viewed week.
func (m *Model) refresh() {
	d, err := m.tracker.Dashboard()
	if err != nil {
		m.err = err
		return
	}
	m.dashboard = d
	if m.cursor >= len(d.Systems) {
		m.cursor = max(len(d.Systems)-1, 0)
	}

	review, err := m.tracker.Review(d.Day)
	if err != nil {
		m.err = err
		return
	}
	m.review = review
	m.err = nil
}

func (m Model) selected() (tracker.SystemDay, bool) {
	if m.cursor < 0 || m.cursor >= len(m.dashboard.Systems) {
		return tracker.SystemDay{}, false
	}
	return m.dashboard.Systems[m.cursor], true
}

// Run starts the full-screen tracker.
func Run(t *tracker.Tracker) error {
	p := tea.NewProgram(NewModel(t), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
