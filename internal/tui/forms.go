package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rythm/internal/models"
)

// SystemForm backs the add/edit system form.
type SystemForm struct {
	Name           string
	Trigger        string
	FullAction     string
	SurvivalAction string
}

// SystemFormFrom prefills a form with an existing system.
func SystemFormFrom(s models.System) SystemForm {
	return SystemForm{
		Name:           s.Name,
		Trigger:        s.Trigger,
		FullAction:     s.FullAction,
		SurvivalAction: s.SurvivalAction,
	}
}

// Incomplete reports whether a required field is still missing.
func (f SystemForm) Incomplete() bool {
	return strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.FullAction) == "" ||
		strings.TrimSpace(f.SurvivalAction) == ""
}

// System converts the form into a new, unsaved system.
func (f SystemForm) System() models.System {
	return f.ApplyTo(models.System{})
}

// ApplyTo copies the form fields onto s.
func (f SystemForm) ApplyTo(s models.System) models.System {
	s.Name = strings.TrimSpace(f.Name)
	s.Trigger = strings.TrimSpace(f.Trigger)
	s.FullAction = strings.TrimSpace(f.FullAction)
	s.SurvivalAction = strings.TrimSpace(f.SurvivalAction)
	return s
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// NewSystemForm creates a new form for adding or editing systems
func NewSystemForm(fm *SystemForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("System Name").
				Value(&fm.Name).
				Validate(required("system name")),
			huh.NewInput().
				Title("Trigger").
				Description("When does this happen? e.g. after morning coffee").
				Value(&fm.Trigger),
			huh.NewInput().
				Title("Full Action").
				Description("What you do on a normal day").
				Value(&fm.FullAction).
				Validate(required("full action")),
			huh.NewInput().
				Title("Survival Action").
				Description("The minimum that still counts on a hard day").
				Value(&fm.SurvivalAction).
				Validate(required("survival action")),
		),
	).WithTheme(huh.ThemeDracula())
}

// SyncForm backs the weekly sync form.
type SyncForm struct {
	Win              string
	Pattern          string
	HardDays         string
	AdjustedSystemID string
	AdjustmentNote   string
	Intention        string
}

// SyncFormFrom prefills a form with a saved reflection.
func SyncFormFrom(w models.WeeklySync) SyncForm {
	f := SyncForm{
		Win:            w.Win,
		Pattern:        w.Pattern,
		HardDays:       w.HardDays,
		AdjustmentNote: w.AdjustmentNote,
		Intention:      w.Intention,
	}
	if w.AdjustedSystemID != nil {
		f.AdjustedSystemID = *w.AdjustedSystemID
	}
	return f
}

// WeeklySync converts the form into a reflection for the week starting on weekStart.
func (f SyncForm) WeeklySync(weekStart string) models.WeeklySync {
	w := models.WeeklySync{
		WeekStart:      weekStart,
		Win:            strings.TrimSpace(f.Win),
		Pattern:        strings.TrimSpace(f.Pattern),
		HardDays:       strings.TrimSpace(f.HardDays),
		AdjustmentNote: strings.TrimSpace(f.AdjustmentNote),
		Intention:      strings.TrimSpace(f.Intention),
	}
	if f.AdjustedSystemID != "" {
		id := f.AdjustedSystemID
		w.AdjustedSystemID = &id
	}
	return w
}

// NewSyncForm creates the weekly sync form. systems populate the
// "system to adjust" select; the empty option means no adjustment.
func NewSyncForm(fm *SyncForm, systems []models.System) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("No change", "")}
	for _, s := range systems {
		options = append(options, huh.NewOption(s.Name, s.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What went well this week?").
				Value(&fm.Win).
				Validate(required("win")),
			huh.NewText().
				Title("What pattern did you notice?").
				Value(&fm.Pattern).
				Validate(required("pattern")),
			huh.NewText().
				Title("Which days were hard, and why?").
				Value(&fm.HardDays),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("System to adjust").
				Options(options...).
				Value(&fm.AdjustedSystemID),
			huh.NewInput().
				Title("Adjustment").
				Description("Ignored when no system is selected").
				Value(&fm.AdjustmentNote),
			huh.NewInput().
				Title("Intention for next week").
				Value(&fm.Intention),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm creates a yes/no confirmation.
func NewConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
