package availability_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
)

type fakeRepo struct {
	settings map[uint]domain.Settings
	saves    int
	saveErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{settings: map[uint]domain.Settings{}}
}

func (r *fakeRepo) GetSettings(_ context.Context, ownerID uint) (domain.Settings, bool, error) {
	s, ok := r.settings[ownerID]
	return s, ok, nil
}

func (r *fakeRepo) SaveSettings(_ context.Context, ownerID uint, s domain.Settings) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.settings[ownerID] = s
	return nil
}

func (r *fakeRepo) SaveWeekly(_ context.Context, ownerID uint, w domain.Weekly) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	s, ok := r.settings[ownerID]
	if !ok {
		s = domain.DefaultSettings()
	}
	s.Weekly = w
	r.settings[ownerID] = s
	return nil
}

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type fakeBusy struct {
	blocks []calendar.BusyBlock
	err    error
	calls  int
}

func (b *fakeBusy) Busy(_ context.Context, _ uint, _, _ time.Time) ([]calendar.BusyBlock, error) {
	b.calls++
	return b.blocks, b.err
}

var errDB = errors.New("connection reset")
