package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	"github.com/BruksfildServices01/recruit-scheduler/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

// GoogleConnector links an owner's Google calendar.
type GoogleConnector interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, ownerID uint, code string) error
}

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	weekView    *ucAvailability.WeekView
	google      GoogleConnector
	clock       calendar.Clock
	interval    time.Duration
	defaultZone string
}

// NewCalendarHandler accepts a nil connector when Google is not configured.
func NewCalendarHandler(
	weekView *ucAvailability.WeekView,
	google GoogleConnector,
	clock calendar.Clock,
	defaultZone string,
) *CalendarHandler {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &CalendarHandler{
		weekView:    weekView,
		google:      google,
		clock:       clock,
		interval:    calendar.NowRefreshInterval,
		defaultZone: defaultZone,
	}
}

type ConnectGoogleRequest struct {
	Code string `json:"code" binding:"required"`
}

// ======================================================
// WEEK
// ======================================================

func (h *CalendarHandler) Week(c *gin.Context) {
	hours, fe := parseHourRange(c)
	if fe != nil {
		httperr.Validation(c, fe)
		return
	}

	grid, err := h.weekView.Execute(c.Request.Context(), ucAvailability.WeekViewInput{
		OwnerID:  middleware.UserID(c),
		Date:     c.Query("date"),
		Nav:      c.Query("nav"),
		Hours:    hours,
		Timezone: h.zone(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, grid)
}

// ======================================================
// NOW (SSE)
// ======================================================

type nowEvent struct {
	Now    time.Time           `json:"now"`
	Marker *calendar.NowMarker `json:"marker"`
}

// Now streams the current-time marker of the current week once per
// interval until the client goes away.
func (h *CalendarHandler) Now(c *gin.Context) {
	hours, fe := parseHourRange(c)
	if fe != nil {
		httperr.Validation(c, fe)
		return
	}
	if hours == (calendar.HourRange{}) {
		hours = calendar.DefaultHourRange
	}
	loc := timezone.Location(h.zone(c))

	ticks := calendar.Watch(c.Request.Context(), h.clock, h.interval)

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		t, ok := <-ticks
		if !ok {
			return false
		}
		local := t.In(loc)
		c.SSEvent("now", nowEvent{
			Now:    local,
			Marker: calendar.NowIndicator(calendar.WeekOf(local), hours, local),
		})
		return true
	})
}

// ======================================================
// GOOGLE CONNECTION
// ======================================================

func (h *CalendarHandler) GoogleAuthURL(c *gin.Context) {
	if h.google == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "calendar_unavailable", "Connexion Google Agenda non configurée.")
		return
	}
	state := uuid.NewString()
	httpresp.OK(c, gin.H{
		"auth_url": h.google.AuthURL(state),
		"state":    state,
	})
}

func (h *CalendarHandler) ConnectGoogle(c *gin.Context) {
	if h.google == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "calendar_unavailable", "Connexion Google Agenda non configurée.")
		return
	}

	var req ConnectGoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.google.Exchange(c.Request.Context(), middleware.UserID(c), req.Code); err != nil {
		_ = c.Error(err)
		httperr.BadRequest(c, "google_exchange_failed", "Autorisation Google refusée.")
		return
	}
	httpresp.OK(c, gin.H{"message": "Google Agenda connecté"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *CalendarHandler) zone(c *gin.Context) string {
	if tz := c.Query("tz"); timezone.IsValid(tz) {
		return tz
	}
	return h.defaultZone
}

// parseHourRange reads from/to. Both empty means the default range.
func parseHourRange(c *gin.Context) (calendar.HourRange, validation.FieldErrors) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		return calendar.HourRange{}, nil
	}

	r := calendar.DefaultHourRange
	fe := validation.FieldErrors{}

	if fromStr != "" {
		v, err := strconv.Atoi(fromStr)
		if err != nil {
			fe.Add("from", "must be an hour between 0 and 23")
		}
		r.From = v
	}
	if toStr != "" {
		v, err := strconv.Atoi(toStr)
		if err != nil {
			fe.Add("to", "must be an hour between 1 and 24")
		}
		r.To = v
	}
	if len(fe) == 0 {
		if err := r.Validate(); err != nil {
			fe.Add("from", err.Error())
		}
	}
	if len(fe) > 0 {
		return calendar.HourRange{}, fe
	}
	return r, nil
}
