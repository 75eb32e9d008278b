package storage

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/julianstephens/rythm/internal/errors"
	"github.com/julianstephens/rythm/internal/models"
)

func TestNullStatus(t *testing.T) {
	tests := []struct {
		status  models.Status
		want    sql.NullString
		wantErr bool
	}{
		{models.StatusDone, sql.NullString{String: "done", Valid: true}, false},
		{models.StatusSurvival, sql.NullString{String: "survival", Valid: true}, false},
		{models.StatusSkip, sql.NullString{String: "skip", Valid: true}, false},
		{models.StatusCleared, sql.NullString{}, false},
		{models.StatusAbsent, sql.NullString{}, true},
		{models.Status("bogus"), sql.NullString{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got, err := NullStatus(tt.status)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NullStatus(%q) error = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NullStatus(%q) = %+v, want %+v", tt.status, got, tt.want)
			}
			if !tt.wantErr && StatusFromNull(got) != tt.status {
				t.Errorf("StatusFromNull(%+v) = %q, want %q", got, StatusFromNull(got), tt.status)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound(fmt.Errorf("scan: %w", sql.ErrNoRows), "system %s", "abc")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "not found: system abc" {
		t.Errorf("unexpected message %q", err.Error())
	}

	other := fmt.Errorf("disk I/O error")
	if got := NotFound(other, "system"); got != other {
		t.Errorf("expected other errors to pass through, got %v", got)
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if v := NullString(nil); v.Valid {
		t.Error("nil pointer should map to NULL")
	}
	empty := ""
	if v := NullString(&empty); v.Valid {
		t.Error("empty string should map to NULL")
	}
	id := "sys-1"
	if p := StringPtr(NullString(&id)); p == nil || *p != id {
		t.Errorf("round trip lost value: %v", p)
	}
}
