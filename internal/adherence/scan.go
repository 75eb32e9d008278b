// Package adherence turns a sparse per-day status log into streaks, comeback
// signals and weekly review statistics.
//
// Everything here is a pure function of its explicit inputs. The only I/O goes
// through the StatusFunc or DayReader the caller supplies.
package adherence

import (
	"fmt"
	"time"

	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
)

// Predicate decides whether a day's status continues a backward scan.
type Predicate func(models.Status) bool

// Options carries the tunables of a scan. Zero values select the defaults.
type Options struct {
	// MaxLookback bounds the streak scan so an always-completed lookup still terminates.
	MaxLookback int
	// Window is the number of past days the comeback scan may inspect.
	Window int
	// Since is the earliest day a scan may inspect, usually the system's creation day.
	Since string
}

func (o Options) maxLookback() int {
	if o.MaxLookback > 0 {
		return o.MaxLookback
	}
	return constants.DefaultMaxLookbackDays
}

func (o Options) window() int {
	if o.Window > 0 {
		return o.Window
	}
	return constants.DefaultComebackWindow
}

// ForSystem returns a copy of o whose Since is the day the system was created in loc.
func (o Options) ForSystem(s models.System, loc *time.Location) Options {
	if !s.CreatedAt.IsZero() {
		if loc == nil {
			loc = time.UTC
		}
		o.Since = calendar.FormatDay(s.CreatedAt.In(loc))
	}
	return o
}

// scanBack walks backward from day, one calendar day at a time, while keep
// holds. It stops at the first day that fails keep, at since, or once limit
// days matched. Matched days are returned newest first.
func scanBack(lookup StatusFunc, day string, keep Predicate, limit int, since string) ([]string, error) {
	if _, err := calendar.ParseDay(day); err != nil {
		return nil, err
	}
	if since != "" && !calendar.Valid(since) {
		return nil, fmt.Errorf("scan floor: %w", errors.ErrMalformedDate)
	}

	var matched []string
	for len(matched) < limit {
		if since != "" && day < since {
			break
		}
		status, err := lookup(day)
		if err != nil {
			return nil, storeError(day, err)
		}
		if !keep(status) {
			break
		}
		matched = append(matched, day)

		prev, err := calendar.PreviousDay(day)
		if err != nil {
			return nil, err
		}
		day = prev
	}
	return matched, nil
}

// storeError marks a lookup failure as ErrStoreUnavailable. Authentication
// failures belong to the caller and pass through untouched.
func storeError(day string, err error) error {
	if errors.Is(err, errors.ErrNotAuthenticated) || errors.Is(err, errors.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: reading %s: %w", errors.ErrStoreUnavailable, day, err)
}
