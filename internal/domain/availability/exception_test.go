package availability_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddExceptions(t *testing.T) {
	list := availability.AddExceptions(nil, day(2026, 10, 22), day(2026, 10, 20))
	list = availability.AddExceptions(list, day(2026, 10, 22), day(2026, 10, 21))

	if len(list) != 3 {
		t.Fatalf("len = %d, want 3 (duplicates ignored)", len(list))
	}
	wantOrder := []string{"2026-10-20", "2026-10-21", "2026-10-22"}
	for i, e := range list {
		if e.Key() != wantOrder[i] {
			t.Errorf("list[%d] = %s, want %s", i, e.Key(), wantOrder[i])
		}
		if e.IsAvailable || e.StartTime != nil || e.EndTime != nil {
			t.Errorf("new exception should default to unavailable without hours: %+v", e)
		}
	}
}

func TestAddExceptions_NormalizesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	list := availability.AddExceptions(nil, time.Date(2026, 10, 22, 23, 30, 0, 0, paris))
	list = availability.AddExceptions(list, day(2026, 10, 22))

	if len(list) != 1 {
		t.Errorf("same calendar date in two locations should dedupe, got %d", len(list))
	}
}

func TestSetExceptionAvailable_ToggleOffClearsHours(t *testing.T) {
	list := availability.AddExceptions(nil, day(2026, 11, 2))
	initial := list[0]

	if !availability.SetExceptionAvailable(list, day(2026, 11, 2), true) {
		t.Fatal("toggle on returned false")
	}
	if list[0].StartTime == nil || *list[0].StartTime != "09:00" || *list[0].EndTime != "17:00" {
		t.Fatalf("toggle on should seed default hours: %+v", list[0])
	}

	availability.SetExceptionAvailable(list, day(2026, 11, 2), false)
	got := list[0]
	if got.IsAvailable != initial.IsAvailable || got.StartTime != nil || got.EndTime != nil {
		t.Errorf("toggle off should restore the unset state, got %+v", got)
	}
}

func TestSetExceptionAvailable_UnknownDate(t *testing.T) {
	list := availability.AddExceptions(nil, day(2026, 11, 2))
	if availability.SetExceptionAvailable(list, day(2026, 11, 3), true) {
		t.Error("expected false for unknown date")
	}
}

func TestSetExceptionHours(t *testing.T) {
	list := availability.AddExceptions(nil, day(2026, 11, 2))

	if availability.SetExceptionHours(list, day(2026, 11, 2), "10:00", "11:00") {
		t.Error("hours must not be set on an unavailable exception")
	}

	availability.SetExceptionAvailable(list, day(2026, 11, 2), true)
	if !availability.SetExceptionHours(list, day(2026, 11, 2), "10:00", "11:00") {
		t.Fatal("SetExceptionHours returned false")
	}
	if *list[0].StartTime != "10:00" || *list[0].EndTime != "11:00" {
		t.Errorf("unexpected hours %+v", list[0])
	}
}

func TestRemoveException(t *testing.T) {
	list := availability.AddExceptions(nil, day(2026, 11, 1), day(2026, 11, 2), day(2026, 11, 3))

	list, ok := availability.RemoveException(list, day(2026, 11, 2))
	if !ok {
		t.Fatal("RemoveException returned false")
	}
	if len(list) != 2 || list[0].Key() != "2026-11-01" || list[1].Key() != "2026-11-03" {
		t.Errorf("unexpected list after remove: %+v", list)
	}

	if _, ok := availability.RemoveException(list, day(2026, 11, 2)); ok {
		t.Error("removing twice should report false")
	}
}

func TestSettings_Resolve(t *testing.T) {
	s := availability.DefaultSettings()
	sat := day(2026, 10, 24)
	mon := day(2026, 10, 26)

	s.Exceptions = availability.AddExceptions(s.Exceptions, sat, mon)
	availability.SetExceptionAvailable(s.Exceptions, sat, true)

	if got := s.Resolve(sat); !got.IsAvailable || got.StartTime != "09:00" {
		t.Errorf("saturday exception should open the day, got %+v", got)
	}
	if got := s.Resolve(mon); got.IsAvailable {
		t.Errorf("monday exception should close the day, got %+v", got)
	}
	if got := s.Resolve(day(2026, 10, 27)); !got.IsAvailable {
		t.Errorf("tuesday should fall back to the template, got %+v", got)
	}
}

func TestSettings_Validate(t *testing.T) {
	s := availability.DefaultSettings()
	s.Connections = []availability.CalendarConnection{{Provider: "google", Enabled: true}, {Provider: "yahoo"}}
	s.Exceptions = availability.AddExceptions(nil, day(2026, 11, 2))
	availability.SetExceptionAvailable(s.Exceptions, day(2026, 11, 2), true)
	availability.SetExceptionHours(s.Exceptions, day(2026, 11, 2), "15:00", "14:00")

	fe := s.Validate()

	for _, f := range []string{"calendar_connections.1.provider", "exceptions.2026-11-02.end_time"} {
		if _, ok := fe[f]; !ok {
			t.Errorf("expected error on %s, got %v", f, fe)
		}
	}
	if len(fe) != 2 {
		t.Errorf("expected exactly 2 errors, got %v", fe)
	}
}

func TestSettings_ValidateRejectsRepeatedProvider(t *testing.T) {
	tests := []struct {
		name  string
		conns []availability.CalendarConnection
		want  map[string]string
	}{
		{
			name:  "distinct providers",
			conns: []availability.CalendarConnection{{Provider: "google", Enabled: true}, {Provider: "outlook"}},
			want:  map[string]string{},
		},
		{
			name:  "google twice",
			conns: []availability.CalendarConnection{{Provider: "google", Enabled: true}, {Provider: "google"}},
			want:  map[string]string{"calendar_connections.1.provider": "duplicate provider"},
		},
		{
			name:  "unknown then google twice",
			conns: []availability.CalendarConnection{{Provider: "yahoo"}, {Provider: "google"}, {Provider: "google"}},
			want: map[string]string{
				"calendar_connections.0.provider": "must be one of: google outlook",
				"calendar_connections.2.provider": "duplicate provider",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := availability.DefaultSettings()
			s.Connections = tt.conns

			fe := s.Validate()
			if len(fe) != len(tt.want) {
				t.Fatalf("errors = %v, want %v", fe, tt.want)
			}
			for k, msg := range tt.want {
				if fe[k] != msg {
					t.Errorf("%s = %q, want %q", k, fe[k], msg)
				}
			}
		})
	}
}

func TestException_JSONUsesPlainDate(t *testing.T) {
	in := []byte(`{"date":"2024-12-25","is_available":true,"start_time":"10:00","end_time":"12:00"}`)

	var e availability.Exception
	if err := json.Unmarshal(in, &e); err != nil {
		t.Fatal(err)
	}
	if e.Key() != "2024-12-25" || !e.IsAvailable || *e.StartTime != "10:00" {
		t.Fatalf("decoded %+v", e)
	}

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"date":"2024-12-25"`) {
		t.Fatalf("encoded %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"25/12/2024"}`), &e); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
