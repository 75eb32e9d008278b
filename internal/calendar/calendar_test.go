package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/rythm/internal/errors"
)

func TestParseDayRoundTrip(t *testing.T) {
	days := []string{"2024-01-01", "2024-02-29", "2024-12-31", "2025-03-30", "1999-10-31", "2026-10-25"}
	for _, day := range days {
		t.Run(day, func(t *testing.T) {
			parsed, err := ParseDay(day)
			if err != nil {
				t.Fatalf("ParseDay(%q) error = %v", day, err)
			}
			if parsed.Hour() != 12 || parsed.Location() != time.UTC {
				t.Errorf("ParseDay(%q) = %v, want 12:00 UTC anchor", day, parsed)
			}
			if got := FormatDay(parsed); got != day {
				t.Errorf("FormatDay(ParseDay(%q)) = %q", day, got)
			}
		})
	}
}

func TestParseDayMalformed(t *testing.T) {
	inputs := []string{"", "2024-2-3", "2024-02-30", "2023-02-29", "2024/01/01", " 2024-01-01", "2024-01-01T00:00:00Z", "yesterday"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDay(in)
			if !errors.Is(err, errors.ErrMalformedDate) {
				t.Errorf("ParseDay(%q) error = %v, want ErrMalformedDate", in, err)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-12-30", "2024-12-30"}, // Monday
		{"2024-12-31", "2024-12-30"},
		{"2025-01-04", "2024-12-30"}, // Saturday
		{"2025-01-05", "2024-12-30"}, // Sunday belongs to the preceding Monday
		{"2025-01-06", "2025-01-06"},
		{"2024-03-03", "2024-02-26"}, // Sunday across a leap month
		{"2026-10-19", "2026-10-19"},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			got, err := WeekStart(tt.day)
			if err != nil {
				t.Fatalf("WeekStart(%q) error = %v", tt.day, err)
			}
			if got != tt.want {
				t.Errorf("WeekStart(%q) = %q, want %q", tt.day, got, tt.want)
			}
			again, err := WeekStart(got)
			if err != nil {
				t.Fatalf("WeekStart(%q) error = %v", got, err)
			}
			if again != got {
				t.Errorf("WeekStart not idempotent: WeekStart(%q) = %q", got, again)
			}
		})
	}
}

func TestWeekWindowAcrossYearBoundary(t *testing.T) {
	got, err := WeekWindow("2024-12-31")
	if err != nil {
		t.Fatalf("WeekWindow error = %v", err)
	}
	want := Week{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WeekWindow mismatch (-want +got):\n%s", diff)
	}
}

func TestWeekWindowProperties(t *testing.T) {
	start, _ := ParseDay("2023-12-25")
	for i := 0; i < 800; i++ {
		day := FormatDay(start.AddDate(0, 0, i))
		w, err := WeekWindow(day)
		if err != nil {
			t.Fatalf("WeekWindow(%q) error = %v", day, err)
		}
		if !w.Contains(day) {
			t.Fatalf("WeekWindow(%q) = %v does not contain the day", day, w)
		}
		monday, _ := ParseDay(w.Start())
		if monday.Weekday() != time.Monday {
			t.Fatalf("WeekWindow(%q) starts on %v", day, monday.Weekday())
		}
		for j := 1; j < DaysPerWeek; j++ {
			next, _ := NextDay(w[j-1])
			if w[j] != next {
				t.Fatalf("WeekWindow(%q) not consecutive at %d: %v", day, j, w)
			}
		}
	}
}

func TestWeekWindowIgnoresLocalZone(t *testing.T) {
	saved := time.Local
	defer func() { time.Local = saved }()

	// Spring-forward weekends in two hemispheres
	for _, zone := range []string{"America/New_York", "Australia/Sydney", "Pacific/Apia"} {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			t.Skipf("timezone data unavailable: %v", err)
		}
		time.Local = loc
		got, err := WeekWindow("2024-03-10")
		if err != nil {
			t.Fatalf("WeekWindow error = %v", err)
		}
		want := Week{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: WeekWindow mismatch (-want +got):\n%s", zone, diff)
		}
	}
}

func TestLastNDays(t *testing.T) {
	tests := []struct {
		name string
		n    int
		day  string
		want []string
	}{
		{"three before", 3, "2025-01-02", []string{"2024-12-30", "2024-12-31", "2025-01-01"}},
		{"one before", 1, "2024-03-01", []string{"2024-02-29"}},
		{"zero", 0, "2024-03-01", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LastNDays(tt.n, tt.day)
			if err != nil {
				t.Fatalf("LastNDays error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LastNDays mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := LastNDays(-1, "2024-03-01"); err == nil {
		t.Error("LastNDays(-1) expected error")
	}
	if _, err := LastNDays(2, "03/01/2024"); !errors.Is(err, errors.ErrMalformedDate) {
		t.Errorf("LastNDays with bad day error = %v, want ErrMalformedDate", err)
	}
}

func TestNeighbours(t *testing.T) {
	prev, err := PreviousDay("2025-03-01")
	if err != nil || prev != "2025-02-28" {
		t.Errorf("PreviousDay = %q, %v", prev, err)
	}
	next, err := NextDay("2024-12-31")
	if err != nil || next != "2025-01-01" {
		t.Errorf("NextDay = %q, %v", next, err)
	}
	if _, err := NextDay("2024-13-01"); !errors.Is(err, errors.ErrMalformedDate) {
		t.Errorf("NextDay bad input error = %v, want ErrMalformedDate", err)
	}
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2024-02-27", "2024-03-02")
	if err != nil || n != 4 {
		t.Errorf("DaysBetween = %d, %v, want 4", n, err)
	}
	n, err = DaysBetween("2024-03-02", "2024-02-27")
	if err != nil || n != -4 {
		t.Errorf("DaysBetween reversed = %d, %v, want -4", n, err)
	}
}

func TestIsToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 10, 19, 22, 30, 0, 0, loc) // already Oct 20 in UTC
	if !IsToday("2026-10-19", now) {
		t.Error("IsToday should read the day in now's location")
	}
	if IsToday("2026-10-20", now) {
		t.Error("IsToday matched the UTC day instead of the local day")
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		timezone string
		wantErr  bool
	}{
		{"", false},
		{"Local", false},
		{"UTC", false},
		{"Invalid/Timezone", true},
	}
	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}

	if _, err := TodayIn("Invalid/Timezone"); err == nil {
		t.Error("TodayIn with invalid timezone expected error")
	}
	today, err := TodayIn("UTC")
	if err != nil || !Valid(today) {
		t.Errorf("TodayIn(UTC) = %q, %v", today, err)
	}
}
