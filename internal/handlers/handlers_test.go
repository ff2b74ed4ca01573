package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/dto"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/jobstate"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/availability"
	ucInterview "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/interview"
)

// ======================================================
// FAKES
// ======================================================

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var testNow = fixedClock(time.Date(2026, 10, 21, 10, 30, 0, 0, time.UTC))

type settingsRepo struct {
	mu       sync.Mutex
	settings map[uint]availability.Settings
}

func (r *settingsRepo) GetSettings(_ context.Context, ownerID uint) (availability.Settings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[ownerID]
	return s, ok, nil
}

func (r *settingsRepo) SaveSettings(_ context.Context, ownerID uint, s availability.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[ownerID] = s
	return nil
}

func (r *settingsRepo) SaveWeekly(_ context.Context, ownerID uint, w availability.Weekly) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[ownerID]
	if !ok {
		s = availability.DefaultSettings()
	}
	s.Weekly = w
	r.settings[ownerID] = s
	return nil
}

type interviewRepo struct {
	mu        sync.Mutex
	proposals []domain.Record
}

func (r *interviewRepo) GetCandidate(_ context.Context, id uint) (*domain.Candidate, error) {
	if id != 7 {
		return nil, httperr.ErrBusiness("candidate_not_found")
	}
	return &domain.Candidate{ID: 7, Name: "Camille Martin"}, nil
}

func (r *interviewRepo) CreateProposal(_ context.Context, rec *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proposals = append(r.proposals, *rec)
	return nil
}

func (r *interviewRepo) GetProposal(_ context.Context, recruiterID uint, id uuid.UUID) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.proposals {
		if p.ID == id && p.RecruiterID == recruiterID {
			return &p, nil
		}
	}
	return nil, httperr.ErrBusiness("proposal_not_found")
}

func (r *interviewRepo) ListProposals(_ context.Context, recruiterID uint) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Record
	for _, p := range r.proposals {
		if p.RecruiterID == recruiterID {
			out = append(out, p)
		}
	}
	return out, nil
}

type draftStore struct {
	mu     sync.Mutex
	drafts map[string]domain.Draft
}

func (s *draftStore) Save(_ context.Context, d domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d
	return nil
}

func (s *draftStore) Get(_ context.Context, id string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return domain.Draft{}, domain.ErrDraftNotFound
	}
	return d, nil
}

func (s *draftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

// ======================================================
// ROUTER
// ======================================================

type testAPI struct {
	router   *gin.Engine
	calendar *CalendarHandler
	repo     *interviewRepo
	jobs     *jobstate.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := &settingsRepo{settings: map[uint]availability.Settings{}}
	repo := &interviewRepo{}
	drafts := &draftStore{drafts: map[string]domain.Draft{}}
	jobs := jobstate.NewMemoryStore()

	d := audit.NewDispatcher(nopSink{}, nil)
	t.Cleanup(d.Close)

	recorder := jobstate.NewSearchRecorder(jobs, 10*time.Millisecond, nil)
	t.Cleanup(recorder.Close)

	plan := ucInterview.NewPlanInterview(repo, nil, d, testNow, nil)

	availabilityHandler := NewAvailabilityHandler(
		ucAvailability.NewGetSettings(settings),
		ucAvailability.NewSaveSettings(settings, d, nil),
		ucAvailability.NewExceptions(settings, d, nil),
	)
	calendarHandler := NewCalendarHandler(
		ucAvailability.NewWeekView(settings, nil, testNow, nil),
		nil,
		testNow,
		"Europe/Paris",
	)
	interviewHandler := NewInterviewHandler(
		plan,
		ucInterview.NewGetProposal(repo),
		ucInterview.NewListProposals(repo),
		ucInterview.NewDrafts(drafts, repo, settings, plan, testNow, "Europe/Paris", nil),
	)
	jobHandler := NewJobStateHandler(jobs, recorder)

	r := gin.New()
	me := r.Group("/api/me")
	me.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(1))
		c.Next()
	})
	{
		me.GET("/availability", availabilityHandler.Get)
		me.PUT("/availability", availabilityHandler.Update)
		me.PUT("/availability/weekly", availabilityHandler.UpdateWeekly)
		me.GET("/availability/time-slots", availabilityHandler.TimeSlots)
		me.POST("/availability/exceptions", availabilityHandler.AddExceptions)
		me.PATCH("/availability/exceptions/:date", availabilityHandler.UpdateException)
		me.DELETE("/availability/exceptions/:date", availabilityHandler.RemoveException)

		me.GET("/calendar/week", calendarHandler.Week)
		me.GET("/calendar/now", calendarHandler.Now)
		me.GET("/calendar/google/auth-url", calendarHandler.GoogleAuthURL)

		me.POST("/interviews", interviewHandler.Create)
		me.GET("/interviews", interviewHandler.List)
		me.GET("/interviews/:id", interviewHandler.Get)
		me.POST("/interviews/drafts", interviewHandler.CreateDraft)
		me.GET("/interviews/drafts/:id", interviewHandler.GetDraft)
		me.PATCH("/interviews/drafts/:id", interviewHandler.UpdateDraft)
		me.POST("/interviews/drafts/:id/tab", interviewHandler.SwitchTab)
		me.POST("/interviews/drafts/:id/alternate-slots", interviewHandler.AddAlternateSlot)
		me.DELETE("/interviews/drafts/:id/alternate-slots/:index", interviewHandler.RemoveAlternateSlot)
		me.POST("/interviews/drafts/:id/reprogram", interviewHandler.Reprogram)
		me.POST("/interviews/drafts/:id/submit", interviewHandler.SubmitDraft)

		me.GET("/saved-jobs", jobHandler.ListSavedJobs)
		me.PUT("/saved-jobs", jobHandler.InitSavedJobs)
		me.POST("/saved-jobs/:jobID", jobHandler.SaveJob)
		me.GET("/recent-searches", jobHandler.ListSearches)
		me.POST("/recent-searches", jobHandler.RecordSearch)
		me.PUT("/tab-counts", jobHandler.SetTabCounts)
	}

	return &testAPI{router: r, calendar: calendarHandler, repo: repo, jobs: jobs}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestAvailability_GetSeedsDefault(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/me/availability", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	s := decode[availability.Settings](t, w)
	if !s.Weekly.Day(availability.Monday).IsAvailable || s.Weekly.Day(availability.Sunday).IsAvailable {
		t.Fatalf("weekly = %+v", s.Weekly)
	}
}

func TestAvailability_PutValidation(t *testing.T) {
	api := newTestAPI(t)

	s := availability.DefaultSettings()
	s.Weekly.SetHours(availability.Tuesday, "17:00", "09:00")

	w := api.do(t, http.MethodPut, "/api/me/availability", s)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decode[httperr.HTTPError](t, w)
	if body.Code != "validation_failed" || body.Fields["weekly_availability.2.end_time"] == "" {
		t.Fatalf("body = %+v", body)
	}
}

func TestAvailability_PutSaves(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPut, "/api/me/availability", availability.DefaultSettings())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if got := decode[SaveSettingsResponse](t, w).Message; got != "Disponibilités enregistrées" {
		t.Fatalf("message = %q", got)
	}
}

func TestAvailability_PutWeeklyKeepsExceptions(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/me/availability/exceptions", AddExceptionsRequest{Dates: []string{"2026-12-24"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d body=%s", w.Code, w.Body.String())
	}

	weekly := availability.DefaultWeekly()
	weekly.SetAvailable(availability.Monday, false)

	w = api.do(t, http.MethodPut, "/api/me/availability/weekly", UpdateWeeklyRequest{Weekly: weekly})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodGet, "/api/me/availability", nil)
	s := decode[availability.Settings](t, w)
	if s.Weekly.Day(availability.Monday).IsAvailable {
		t.Errorf("monday still available: %+v", s.Weekly)
	}
	if len(s.Exceptions) != 1 {
		t.Errorf("exceptions = %+v", s.Exceptions)
	}
}

func TestAvailability_PutRepeatedProvider(t *testing.T) {
	api := newTestAPI(t)

	s := availability.DefaultSettings()
	s.Connections = []availability.CalendarConnection{{Provider: "google", Enabled: true}, {Provider: "google"}}

	w := api.do(t, http.MethodPut, "/api/me/availability", s)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decode[httperr.HTTPError](t, w)
	if body.Fields["calendar_connections.1.provider"] != "duplicate provider" {
		t.Fatalf("body = %+v", body)
	}
}

func TestAvailability_ExceptionsLifecycle(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/me/availability/exceptions", AddExceptionsRequest{Dates: []string{"2026-12-24"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d body=%s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPatch, "/api/me/availability/exceptions/2026-12-24", map[string]any{"is_available": true})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d body=%s", w.Code, w.Body.String())
	}
	s := decode[availability.Settings](t, w)
	if len(s.Exceptions) != 1 || !s.Exceptions[0].IsAvailable || *s.Exceptions[0].StartTime != "09:00" {
		t.Errorf("exceptions = %+v", s.Exceptions)
	}

	w = api.do(t, http.MethodDelete, "/api/me/availability/exceptions/2026-12-24", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = api.do(t, http.MethodDelete, "/api/me/availability/exceptions/2026-12-24", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
}

func TestAvailability_TimeSlots(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/me/availability/time-slots", nil)
	body := decode[struct {
		Data  []string `json:"data"`
		Total int      `json:"total"`
	}](t, w)
	if body.Total != 48 || body.Data[0] != "00:00" || body.Data[47] != "23:30" {
		t.Fatalf("slots = %d %v", body.Total, body.Data)
	}
}

// ======================================================
// CALENDAR
// ======================================================

func TestCalendar_Week(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default", query: "", want: http.StatusOK},
		{name: "navigate", query: "?date=2026-10-21&nav=next", want: http.StatusOK},
		{name: "custom hours", query: "?from=7&to=22", want: http.StatusOK},
		{name: "bad hour", query: "?from=x", want: http.StatusUnprocessableEntity},
		{name: "inverted hours", query: "?from=18&to=9", want: http.StatusUnprocessableEntity},
		{name: "bad date", query: "?date=21-10-2026", want: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/me/calendar/week"+tt.query, nil)
			if w.Code != tt.want {
				t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCalendar_NowStreamsMarker(t *testing.T) {
	api := newTestAPI(t)
	api.calendar.interval = 10 * time.Millisecond

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/me/calendar/now", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	var event, data string
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "event:") {
			event = strings.TrimPrefix(line, "event:")
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimPrefix(line, "data:")
			break
		}
	}

	if event != "now" {
		t.Fatalf("event = %q", event)
	}
	var ev nowEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		t.Fatalf("data %q: %v", data, err)
	}
	// Wednesday 12:30 in Paris
	if ev.Marker == nil || ev.Marker.DayIndex != 2 || ev.Marker.Hour != 12 {
		t.Fatalf("marker = %+v", ev.Marker)
	}
}

func TestCalendar_GoogleNotConfigured(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/me/calendar/google/auth-url", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

// ======================================================
// INTERVIEWS
// ======================================================

func TestInterview_CreateValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/me/interviews", domain.Submission{
		CandidateID:      7,
		Format:           domain.FormatPerson,
		Duration:         "45",
		AvailabilityMode: domain.ModeShare,
		SelectedWeek:     "2026-10-19",
		Message:          "Bonjour",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	body := decode[httperr.HTTPError](t, w)
	for _, f := range []string{"address", "map_url", "weekly_availability"} {
		if body.Fields[f] == "" {
			t.Errorf("missing field error %q in %v", f, body.Fields)
		}
	}
	// inactive branches are never reported
	for _, f := range []string{"video_url", "date", "time", "timezone"} {
		if _, ok := body.Fields[f]; ok {
			t.Errorf("unexpected field error %q", f)
		}
	}
	if len(api.repo.proposals) != 0 {
		t.Error("invalid submission persisted")
	}
}

func TestInterview_DraftFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/me/interviews/drafts", CreateDraftRequest{CandidateID: 7})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	draft := decode[domain.Draft](t, w)
	base := "/api/me/interviews/drafts/" + draft.ID

	w = api.do(t, http.MethodPost, base+"/tab", SwitchTabRequest{Tab: domain.TabShareAvailability})
	if w.Code != http.StatusOK {
		t.Fatalf("tab status = %d body=%s", w.Code, w.Body.String())
	}

	edited := availability.DefaultWeekly()
	edited.SetAvailable(availability.Saturday, true)
	w = api.do(t, http.MethodPost, base+"/reprogram", domain.ReprogramResult{Committed: true, WeeklyAvailability: edited})
	if w.Code != http.StatusOK {
		t.Fatalf("reprogram status = %d body=%s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPost, base+"/submit", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete submit status = %d body=%s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPatch, base, map[string]any{
		"video_url": "https://meet.example.com/abc",
		"message":   "Bonjour Camille",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d body=%s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodPost, base+"/submit", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d body=%s", w.Code, w.Body.String())
	}
	out := decode[ucInterview.PlanInterviewOutput](t, w)
	if out.Message != "Invitation envoyée à Camille Martin" {
		t.Errorf("message = %q", out.Message)
	}
	if !out.Proposal.Payload.WeeklyAvailability.Day(availability.Saturday).IsAvailable {
		t.Error("reprogrammed availability not submitted")
	}
	if _, ok := out.Proposal.Payload.WeeklyAvailability[availability.Sunday]; ok {
		t.Error("unavailable days must be dropped from the payload")
	}

	w = api.do(t, http.MethodGet, base, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("draft after submit status = %d", w.Code)
	}

	w = api.do(t, http.MethodGet, "/api/me/interviews/"+out.Proposal.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get proposal status = %d", w.Code)
	}

	w = api.do(t, http.MethodGet, "/api/me/interviews", nil)
	list := decode[struct {
		Data  []dto.ProposalListDTO `json:"data"`
		Total int                   `json:"total"`
	}](t, w)
	if list.Total != 1 || list.Data[0].CandidateName != "Camille Martin" || list.Data[0].SelectedWeek != "2026-10-19" {
		t.Fatalf("list = %+v", list)
	}
}

func TestInterview_AlternateSlotsCapped(t *testing.T) {
	api := newTestAPI(t)

	draft := decode[domain.Draft](t, api.do(t, http.MethodPost, "/api/me/interviews/drafts", CreateDraftRequest{CandidateID: 7}))
	base := "/api/me/interviews/drafts/" + draft.ID

	for i := 0; i < domain.MaxAlternateSlots; i++ {
		if w := api.do(t, http.MethodPost, base+"/alternate-slots", nil); w.Code != http.StatusOK {
			t.Fatalf("add %d status = %d", i, w.Code)
		}
	}
	if w := api.do(t, http.MethodPost, base+"/alternate-slots", nil); w.Code != http.StatusConflict {
		t.Fatalf("over cap status = %d", w.Code)
	}
	if w := api.do(t, http.MethodDelete, base+"/alternate-slots/x", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad index status = %d", w.Code)
	}
	if w := api.do(t, http.MethodDelete, base+"/alternate-slots/0", nil); w.Code != http.StatusOK {
		t.Fatalf("remove status = %d", w.Code)
	}
}

func TestInterview_UnknownDraft(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/me/interviews/drafts/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if decode[httperr.HTTPError](t, w).Code != "draft_not_found" {
		t.Fatalf("body = %s", w.Body.String())
	}
}

// ======================================================
// JOB STATE
// ======================================================

func TestJobState_SavedJobsAndCounts(t *testing.T) {
	api := newTestAPI(t)

	if w := api.do(t, http.MethodPut, "/api/me/saved-jobs", InitSavedJobsRequest{JobIDs: []string{"b", "a"}}); w.Code != http.StatusOK {
		t.Fatalf("init status = %d", w.Code)
	}
	if w := api.do(t, http.MethodPost, "/api/me/saved-jobs/c", nil); w.Code != http.StatusNoContent {
		t.Fatalf("save status = %d", w.Code)
	}

	w := api.do(t, http.MethodGet, "/api/me/saved-jobs", nil)
	if !strings.Contains(w.Body.String(), `"data":["a","b","c"]`) {
		t.Fatalf("body = %s", w.Body.String())
	}

	if w := api.do(t, http.MethodPut, "/api/me/tab-counts", map[string]int{"saved": -1}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("negative count status = %d", w.Code)
	}
}

func TestJobState_RecordSearchIsDebounced(t *testing.T) {
	api := newTestAPI(t)

	for _, q := range []string{"g", "go", "go dev"} {
		if w := api.do(t, http.MethodPost, "/api/me/recent-searches", RecordSearchRequest{Query: q}); w.Code != http.StatusAccepted {
			t.Fatalf("status = %d", w.Code)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, _ := api.jobs.RecentSearches(context.Background(), 1)
		if len(got) > 0 {
			if len(got) != 1 || got[0] != "go dev" {
				t.Fatalf("searches = %v", got)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("search never recorded")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
