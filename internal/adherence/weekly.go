package adherence

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/rythm/internal/calendar"
	"github.com/julianstephens/rythm/internal/constants"
	"github.com/julianstephens/rythm/internal/models"
)

// reviewFetchLimit caps concurrent day reads in ReviewWeek.
const reviewFetchLimit = 4

// Pattern is the headline observation for one system's week.
type Pattern struct {
	// SkipDay is the most-missed weekday, Monday = 0, or -1 when nothing was missed.
	SkipDay int
	// Label is empty when there is nothing worth saying (0% completion).
	Label string
}

// HasSkipDay reports whether the pattern names a weekday.
func (p Pattern) HasSkipDay() bool {
	return p.SkipDay >= 0
}

// SystemWeek is one row of the weekly review matrix.
type SystemWeek struct {
	System     models.System
	Statuses   [calendar.DaysPerWeek]models.Status
	Completion int
	Pattern    Pattern
}

// Review is the weekly review matrix for a user's systems.
type Review struct {
	Week calendar.Week
	Rows []SystemWeek
}

// Completion returns the rounded percentage of completed statuses.
func Completion(statuses []models.Status) int {
	if len(statuses) == 0 {
		return 0
	}
	completed := 0
	for _, s := range statuses {
		if s.Completed() {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(statuses))))
}

// AnalyzePattern tallies missed statuses by weekday position (index mod 7, so
// several weeks may be passed back to back) and names the most-missed weekday.
// Ties go to the earliest weekday. Without any miss the label falls back to
// the completion ladder.
func AnalyzePattern(statuses []models.Status) Pattern {
	var tally [calendar.DaysPerWeek]int
	for i, s := range statuses {
		if s.Missed() {
			tally[i%calendar.DaysPerWeek]++
		}
	}

	best := -1
	for day, n := range tally {
		if n >= 1 && (best < 0 || n > tally[best]) {
			best = day
		}
	}
	if best >= 0 {
		return Pattern{
			SkipDay: best,
			Label:   fmt.Sprintf(constants.SkipDayLabelFormat, constants.WeekdayNames[best]),
		}
	}
	return Pattern{SkipDay: -1, Label: CompletionLabel(Completion(statuses))}
}

// CompletionLabel maps a completion percentage onto its qualitative label.
func CompletionLabel(pct int) string {
	switch {
	case pct >= 100:
		return constants.LabelPerfectWeek
	case pct >= constants.StrongConsistencyMin:
		return constants.LabelStrongConsistency
	case pct >= constants.BuildingMomentumMin:
		return constants.LabelBuildingMomentum
	case pct > 0:
		return constants.LabelStartingSmall
	default:
		return ""
	}
}

// Summarize builds a review row from a system's seven statuses, Monday first.
func Summarize(s models.System, statuses [calendar.DaysPerWeek]models.Status) SystemWeek {
	return SystemWeek{
		System:     s,
		Statuses:   statuses,
		Completion: Completion(statuses[:]),
		Pattern:    AnalyzePattern(statuses[:]),
	}
}

// ReviewWeek reads each day of week once and builds a row per system.
// Day reads run concurrently; any failure aborts the review with ErrStoreUnavailable.
func ReviewWeek(r DayReader, userID string, systems []models.System, week calendar.Week) (Review, error) {
	var byDay [calendar.DaysPerWeek]map[string]models.Status

	var g errgroup.Group
	g.SetLimit(reviewFetchLimit)
	for i, day := range week {
		g.Go(func() error {
			logs, err := r.GetLogsForDay(userID, day)
			if err != nil {
				return storeError(day, err)
			}
			statuses := make(map[string]models.Status, len(logs))
			for _, l := range logs {
				statuses[l.SystemID] = l.Status
			}
			byDay[i] = statuses
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Review{}, err
	}

	review := Review{Week: week, Rows: make([]SystemWeek, 0, len(systems))}
	for _, s := range systems {
		var statuses [calendar.DaysPerWeek]models.Status
		for i := range week {
			statuses[i] = byDay[i][s.ID]
		}
		review.Rows = append(review.Rows, Summarize(s, statuses))
	}
	return review, nil
}

// Totals returns the overall completion percentage across every row.
func (r Review) Totals() int {
	var all []models.Status
	for _, row := range r.Rows {
		all = append(all, row.Statuses[:]...)
	}
	return Completion(all)
}
