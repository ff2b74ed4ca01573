package interview_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
)

type fakeRepo struct {
	candidates map[uint]domain.Candidate
	proposals  []domain.Record
	createErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{candidates: map[uint]domain.Candidate{
		7: {ID: 7, Name: "Camille Martin", Phone: "+33 6 12 34 56 78"},
		8: {ID: 8, Name: "Noé Petit"},
	}}
}

func (r *fakeRepo) GetCandidate(_ context.Context, id uint) (*domain.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, httperr.ErrBusiness("candidate_not_found")
	}
	return &c, nil
}

func (r *fakeRepo) CreateProposal(_ context.Context, rec *domain.Record) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.proposals = append(r.proposals, *rec)
	return nil
}

func (r *fakeRepo) GetProposal(_ context.Context, recruiterID uint, id uuid.UUID) (*domain.Record, error) {
	for _, p := range r.proposals {
		if p.ID == id && p.RecruiterID == recruiterID {
			return &p, nil
		}
	}
	return nil, httperr.ErrBusiness("proposal_not_found")
}

func (r *fakeRepo) ListProposals(_ context.Context, recruiterID uint) ([]domain.Record, error) {
	var out []domain.Record
	for _, p := range r.proposals {
		if p.RecruiterID == recruiterID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeArchive struct {
	puts []domain.Record
	err  error
}

func (a *fakeArchive) Put(_ context.Context, rec domain.Record) error {
	a.puts = append(a.puts, rec)
	return a.err
}

type memoryDrafts struct {
	mu        sync.Mutex
	drafts    map[string]domain.Draft
	saves     int
	deleteErr error
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[string]domain.Draft{}}
}

func (m *memoryDrafts) Save(_ context.Context, d domain.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.drafts[d.ID] = d
	return nil
}

func (m *memoryDrafts) Get(_ context.Context, id string) (domain.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return domain.Draft{}, domain.ErrDraftNotFound
	}
	return d, nil
}

func (m *memoryDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.drafts, id)
	return nil
}

type fakeSettings struct {
	settings map[uint]availability.Settings
}

func (f *fakeSettings) GetSettings(_ context.Context, ownerID uint) (availability.Settings, bool, error) {
	s, ok := f.settings[ownerID]
	return s, ok, nil
}

func (f *fakeSettings) SaveSettings(_ context.Context, ownerID uint, s availability.Settings) error {
	f.settings[ownerID] = s
	return nil
}

func (f *fakeSettings) SaveWeekly(_ context.Context, ownerID uint, w availability.Weekly) error {
	s := f.settings[ownerID]
	s.Weekly = w
	f.settings[ownerID] = s
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

var (
	now   = fixedClock(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	errDB = errors.New("connection reset")
)

func validSubmission() domain.Submission {
	return domain.Submission{
		CandidateID:      7,
		Format:           domain.FormatVideo,
		Duration:         "30",
		AvailabilityMode: domain.ModeSpecific,
		VideoURL:         "https://meet.example.com/abc",
		Date:             "2026-10-21",
		Time:             "14:30",
		Timezone:         "Europe/Paris",
		Message:          "Bonjour, seriez-vous disponible ?",
	}
}
