package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
)

// DefaultSystems are offered to a new user by `rythm init --seed`.
var DefaultSystems = []models.System{
	{
		Name:           "Morning Movement",
		Trigger:        "After I get out of bed",
		FullAction:     "20 minutes of exercise",
		SurvivalAction: "5 pushups",
	},
	{
		Name:           "Ship Something Small",
		Trigger:        "After my first coffee",
		FullAction:     "Finish and publish one small piece of work",
		SurvivalAction: "Write one sentence or one line of code",
	},
	{
		Name:           "Family Connection",
		Trigger:        "At dinner",
		FullAction:     "30 minutes of phone-free time together",
		SurvivalAction: "Ask one real question and listen",
	},
	{
		Name:           "Partner Wind-Down",
		Trigger:        "When the kids are asleep",
		FullAction:     "Talk about the day for 15 minutes",
		SurvivalAction: "Say one thing you appreciated",
	},
}

// Systems lists the user's non-deleted systems.
func (t *Tracker) Systems(includePaused bool) ([]models.System, error) {
	return t.store.GetAllSystems(t.userID, includePaused, false)
}

// FindSystem resolves a system by id first, then by case-insensitive name.
func (t *Tracker) FindSystem(ref string) (models.System, error) {
	ref = strings.TrimSpace(ref)
	sys, err := t.store.GetSystem(t.userID, ref)
	if err == nil {
		return sys, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return models.System{}, err
	}
	return t.store.GetSystemByName(t.userID, ref)
}

// AddSystem validates and stores a new system. A user may hold at most
// constants.MaxSystems non-deleted systems, and names are unique per user.
func (t *Tracker) AddSystem(sys models.System) (models.System, error) {
	if err := sys.Validate(); err != nil {
		return models.System{}, err
	}
	count, err := t.store.CountSystems(t.userID)
	if err != nil {
		return models.System{}, err
	}
	if count >= constants.MaxSystems {
		return models.System{}, fmt.Errorf("%w: you already have %d systems", errors.ErrSystemLimit, count)
	}
	if err := t.ensureUniqueName(sys.Name, ""); err != nil {
		return models.System{}, err
	}

	sys.ID = t.newID()
	sys.UserID = t.userID
	sys.Name = strings.TrimSpace(sys.Name)
	sys.CreatedAt = t.now().UTC()
	sys.DeletedAt = nil
	if err := t.store.AddSystem(sys); err != nil {
		return models.System{}, err
	}
	logger.Info("Added system", "id", sys.ID, "name", sys.Name)
	return sys, nil
}

// UpdateSystem saves edits to an existing system. Creation time and
// ownership cannot change.
func (t *Tracker) UpdateSystem(sys models.System) error {
	if err := sys.Validate(); err != nil {
		return err
	}
	existing, err := t.store.GetSystem(t.userID, sys.ID)
	if err != nil {
		return err
	}
	if err := t.ensureUniqueName(sys.Name, sys.ID); err != nil {
		return err
	}
	sys.UserID = existing.UserID
	sys.CreatedAt = existing.CreatedAt
	sys.DeletedAt = existing.DeletedAt
	return t.store.UpdateSystem(sys)
}

// SetPaused pauses or resumes a system. Paused systems keep their history
// but are skipped by the tracker and the comeback check.
func (t *Tracker) SetPaused(ref string, paused bool) (models.System, error) {
	sys, err := t.FindSystem(ref)
	if err != nil {
		return models.System{}, err
	}
	sys.Paused = paused
	if err := t.store.UpdateSystem(sys); err != nil {
		return models.System{}, err
	}
	return sys, nil
}

// DeleteSystem soft-deletes a system together with its logs.
func (t *Tracker) DeleteSystem(ref string) (models.System, error) {
	sys, err := t.FindSystem(ref)
	if err != nil {
		return models.System{}, err
	}
	if err := t.store.DeleteSystem(t.userID, sys.ID); err != nil {
		return models.System{}, err
	}
	logger.Info("Deleted system", "id", sys.ID, "name", sys.Name)
	return sys, nil
}

// RestoreSystem undoes DeleteSystem, subject to the system limit. A system
// cannot come back while another active system holds its name.
func (t *Tracker) RestoreSystem(id string) error {
	all, err := t.store.GetAllSystems(t.userID, true, true)
	if err != nil {
		return err
	}
	for _, sys := range all {
		if sys.ID == id && sys.DeletedAt != nil {
			if err := t.ensureUniqueName(sys.Name, sys.ID); err != nil {
				return fmt.Errorf("cannot restore: %w", err)
			}
		}
	}

	count, err := t.store.CountSystems(t.userID)
	if err != nil {
		return err
	}
	if count >= constants.MaxSystems {
		return fmt.Errorf("%w: delete a system before restoring another", errors.ErrSystemLimit)
	}
	return t.store.RestoreSystem(t.userID, id)
}

// SeedDefaults adds the default systems when the user has none.
func (t *Tracker) SeedDefaults() ([]models.System, error) {
	count, err := t.store.CountSystems(t.userID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}
	var added []models.System
	for _, def := range DefaultSystems {
		sys, err := t.AddSystem(def)
		if err != nil {
			return added, err
		}
		added = append(added, sys)
	}
	return added, nil
}

func (t *Tracker) ensureUniqueName(name, selfID string) error {
	existing, err := t.store.GetSystemByName(t.userID, strings.TrimSpace(name))
	if err == nil && existing.ID != selfID {
		return fmt.Errorf("a system named %q already exists", existing.Name)
	}
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	return nil
}
