package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rythm/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	if m.state == StateAddSystem || m.state == StateWeeklySync {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Tab):
		if m.state == StateToday {
			m.state = StateWeek
		} else {
			m.state = StateToday
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.dashboard.Systems)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Prev):
		m.step(-1)
	case key.Matches(keyMsg, m.keys.Next):
		m.step(1)
	case key.Matches(keyMsg, m.keys.Today):
		_, err := m.tracker.SetViewedDay("")
		m.after(err, "")
	case key.Matches(keyMsg, m.keys.Done):
		m.mark(models.StatusDone)
	case key.Matches(keyMsg, m.keys.Survival):
		m.mark(models.StatusSurvival)
	case key.Matches(keyMsg, m.keys.Skip):
		m.mark(models.StatusSkip)
	case key.Matches(keyMsg, m.keys.Clear):
		m.mark(models.StatusCleared)
	case key.Matches(keyMsg, m.keys.Mode):
		settings, err := m.tracker.SetSurvivalMode(!m.dashboard.SurvivalMode)
		if err == nil && settings.SurvivalMode {
			m.after(nil, "Survival mode on")
		} else {
			m.after(err, "Survival mode off")
		}
	case key.Matches(keyMsg, m.keys.Restart):
		if row, ok := m.selected(); ok {
			_, err := m.tracker.RestartWithSurvival(row.System.ID)
			m.after(err, "Restarted "+row.System.Name+" with its survival action")
		}
	case key.Matches(keyMsg, m.keys.Add):
		m.systemForm = &SystemForm{}
		m.form = NewSystemForm(m.systemForm)
		m.state = StateAddSystem
		cmd := m.form.Init()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Sync):
		cmd := m.openSync()
		return m, cmd
	}
	return m, nil
}

func (m *Model) step(delta int) {
	_, err := m.tracker.StepViewedDay(delta)
	m.after(err, "")
}

func (m *Model) mark(status models.Status) {
	if m.state != StateToday {
		return
	}
	row, ok := m.selected()
	if !ok {
		return
	}
	_, err := m.tracker.Mark(row.System.ID, m.dashboard.Day, status)
	m.after(err, fmt.Sprintf("%s: %s", row.System.Name, status))
}

// after records the outcome of an action and reloads state on success.
func (m *Model) after(err error, message string) {
	if err != nil {
		m.err = err
		m.message = ""
		return
	}
	m.message = message
	m.refresh()
}

func (m *Model) openSync() tea.Cmd {
	week, err := m.tracker.CurrentWeekStart()
	if err != nil {
		m.err = err
		return nil
	}
	form := SyncForm{}
	if saved, err := m.tracker.WeeklySync(week); err == nil {
		form = SyncFormFrom(saved)
	}
	systems, err := m.tracker.Systems(true)
	if err != nil {
		m.err = err
		return nil
	}
	m.syncForm = &form
	m.syncWeek = week
	m.form = NewSyncForm(m.syncForm, systems)
	m.state = StateWeeklySync
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	back := StateToday
	if m.state == StateWeeklySync {
		back = StateWeek
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = back
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		var message string
		if m.state == StateAddSystem {
			var sys models.System
			sys, err = m.tracker.AddSystem(m.systemForm.System())
			message = "Added " + sys.Name
		} else {
			_, err = m.tracker.SaveWeeklySync(m.syncForm.WeeklySync(m.syncWeek))
			message = "Saved weekly sync for " + m.syncWeek
		}
		m.state = back
		m.after(err, message)
		return m, nil
	case huh.StateAborted:
		m.state = back
		return m, nil
	}
	return m, cmd
}
