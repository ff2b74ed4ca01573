package repository

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/models"
)

func TestTranslateUnique(t *testing.T) {
	plain := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"exception date", &pgconn.PgError{Code: "23505", ConstraintName: "idx_owner_date"}, "duplicate_exception_date"},
		{"calendar provider", &pgconn.PgError{Code: "23505", ConstraintName: "idx_owner_provider"}, "duplicate_calendar_provider"},
		{"weekday", fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_owner_weekday"}), "duplicate_weekday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateUnique(tt.err); !httperr.IsBusiness(got, tt.code) {
				t.Fatalf("got %v, want %s", got, tt.code)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		if got := translateUnique(plain); got != plain {
			t.Fatalf("got %v", got)
		}
		fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_candidate"}
		if got := translateUnique(fk); got != error(fk) {
			t.Fatalf("got %v", got)
		}
		if translateUnique(nil) != nil {
			t.Fatal("nil must stay nil")
		}
	})
}

func TestWeekdayRows(t *testing.T) {
	w := availability.Weekly{
		availability.Sunday: {IsAvailable: false},
		availability.Monday: {IsAvailable: true, StartTime: "09:00", EndTime: "12:00"},
	}

	rows := weekdayRows(5, w)

	want := []models.WeekdayAvailability{
		{OwnerID: 5, Weekday: 1, IsAvailable: true, StartTime: "09:00", EndTime: "12:00"},
		{OwnerID: 5, Weekday: 7},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v\nwant %+v", rows, want)
	}
}

func TestProposalModelRoundTrip(t *testing.T) {
	rec := &interview.Record{
		ID:          uuid.New(),
		RecruiterID: 2,
		Status:      "proposed",
		Payload: interview.Payload{
			CandidateID:      7,
			Format:           interview.FormatVideo,
			Duration:         45,
			AvailabilityMode: interview.ModeSpecific,
			VideoURL:         "https://meet.example.com/x",
			Date:             "2026-10-22",
			Time:             "14:00",
			Timezone:         "Europe/Paris",
			AlternateSlots: []interview.Slot{
				{Date: "2026-10-23", Time: "09:00"},
				{Date: "2026-10-24", Time: "11:30"},
			},
			Message:     "Bonjour",
			TeamMembers: []string{"alice@example.com", "bob@example.com"},
		},
	}

	row := toProposalModel(rec)
	if len(row.AlternateSlots) != 2 || row.AlternateSlots[1].Position != 1 || row.AlternateSlots[1].ProposalID != rec.ID {
		t.Fatalf("slots = %+v", row.AlternateSlots)
	}
	if row.TeamMembers != "alice@example.com,bob@example.com" {
		t.Errorf("team members = %q", row.TeamMembers)
	}

	row.Candidate = models.Candidate{Name: "Camille Martin"}
	back := fromProposalModel(row)

	want := rec.Payload
	want.CandidateName = "Camille Martin"
	if !reflect.DeepEqual(back.Payload, want) {
		t.Fatalf("payload = %+v\nwant %+v", back.Payload, want)
	}
	if back.ID != rec.ID || back.RecruiterID != 2 || back.Status != "proposed" {
		t.Errorf("record = %+v", back)
	}
}
