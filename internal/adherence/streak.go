package adherence

import (
	"github.com/julianstephens/rythm/internal/logger"
	"github.com/julianstephens/rythm/internal/models"
)

// Streak counts the consecutive completed days ending at day, inclusive.
// The count includes day itself only when day is completed, so a day with no
// log yields 0. A lookup failure aborts the scan with ErrStoreUnavailable
// instead of reporting a possibly wrong streak.
func Streak(lookup StatusFunc, day string, opts Options) (int, error) {
	limit := opts.maxLookback()
	days, err := scanBack(lookup, day, models.Status.Completed, limit, opts.Since)
	if err != nil {
		return 0, err
	}
	if len(days) == limit {
		logger.Warn("Streak scan reached lookback bound", "day", day, "limit", limit)
	}
	return len(days), nil
}
