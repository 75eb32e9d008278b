package models

import "fmt"

// Status is the recorded outcome of one system on one calendar day.
type Status string

const (
	// StatusAbsent means no record exists for the day.
	StatusAbsent Status = ""
	// StatusCleared means a record exists but its status was cleared (stored as NULL).
	StatusCleared  Status = "cleared"
	StatusDone     Status = "done"
	StatusSurvival Status = "survival"
	StatusSkip     Status = "skip"
)

// Completed reports whether the status counts toward a streak or the weekly completion rate.
func (s Status) Completed() bool {
	return s == StatusDone || s == StatusSurvival
}

// Missed reports whether the status counts as a miss: absent, cleared or skip.
func (s Status) Missed() bool {
	return !s.Completed()
}

// Recorded reports whether a row with a non-null status exists.
func (s Status) Recorded() bool {
	return s != StatusAbsent && s != StatusCleared
}

// Symbol returns the one-character glyph used in tables and the TUI.
func (s Status) Symbol() string {
	switch s {
	case StatusDone:
		return "✓"
	case StatusSurvival:
		return "⚡"
	case StatusSkip:
		return "✗"
	case StatusCleared:
		return "·"
	default:
		return "○"
	}
}

func (s Status) String() string {
	if s == StatusAbsent {
		return "absent"
	}
	return string(s)
}

// ParseStatus parses user input into a Status. "clear" and "none" map to StatusCleared.
func ParseStatus(v string) (Status, error) {
	switch v {
	case "done", "d":
		return StatusDone, nil
	case "survival", "s":
		return StatusSurvival, nil
	case "skip", "x":
		return StatusSkip, nil
	case "clear", "cleared", "none":
		return StatusCleared, nil
	default:
		return StatusAbsent, fmt.Errorf("invalid status %q (expected done, survival, skip or clear)", v)
	}
}
