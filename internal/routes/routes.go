package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	"github.com/BruksfildServices01/recruit-scheduler/internal/config"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/handlers"
	"github.com/BruksfildServices01/recruit-scheduler/internal/infra/archive"
	"github.com/BruksfildServices01/recruit-scheduler/internal/infra/gcal"
	"github.com/BruksfildServices01/recruit-scheduler/internal/infra/redisstore"
	infraRepo "github.com/BruksfildServices01/recruit-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/recruit-scheduler/internal/jobstate"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/availability"
	ucInterview "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/interview"
)

// RegisterRoutes wires every dependency and mounts the API. The returned
// func writes searches still being debounced and drains the audit queue. It
// must run on shutdown, before rdb and db close.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) (shutdown func()) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, log))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db)
	interviewRepo := infraRepo.NewInterviewGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	draftStore := redisstore.NewDraftStore(rdb, time.Duration(cfg.DraftTTLHours)*time.Hour)
	jobStore := jobstate.NewRedisStore(rdb)
	searchRecorder := jobstate.NewSearchRecorder(jobStore, jobstate.SearchQuietPeriod, log)

	var proposalArchive interview.Archive
	if cfg.ArchiveEnabled() {
		proposalArchive = archive.NewS3Archive(cfg)
	}

	var (
		busy   ucAvailability.BusySource
		google handlers.GoogleConnector
	)
	if cfg.GoogleCalendarEnabled() {
		client := gcal.NewClient(cfg, infraRepo.NewGoogleTokenGormRepository(db), log)
		busy = client
		google = client
	}

	clock := calendar.SystemClock{}

	// ======================================================
	// USE CASES
	// ======================================================
	getSettingsUC := ucAvailability.NewGetSettings(availabilityRepo)
	saveSettingsUC := ucAvailability.NewSaveSettings(availabilityRepo, auditDispatcher, log)
	exceptionsUC := ucAvailability.NewExceptions(availabilityRepo, auditDispatcher, log)
	weekViewUC := ucAvailability.NewWeekView(availabilityRepo, busy, clock, log)

	planInterviewUC := ucInterview.NewPlanInterview(
		interviewRepo,
		proposalArchive,
		auditDispatcher,
		clock,
		log,
	)
	draftsUC := ucInterview.NewDrafts(
		draftStore,
		interviewRepo,
		availabilityRepo,
		planInterviewUC,
		clock,
		cfg.DefaultTimezone,
		log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(getSettingsUC, saveSettingsUC, exceptionsUC)
	calendarHandler := handlers.NewCalendarHandler(weekViewUC, google, clock, cfg.DefaultTimezone)
	interviewHandler := handlers.NewInterviewHandler(
		planInterviewUC,
		ucInterview.NewGetProposal(interviewRepo),
		ucInterview.NewListProposals(interviewRepo),
		draftsUC,
	)
	jobStateHandler := handlers.NewJobStateHandler(jobStore, searchRecorder)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	secured := api.Group("/me")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		secured.GET("/availability", availabilityHandler.Get)
		secured.PUT("/availability", availabilityHandler.Update)
		secured.PUT("/availability/weekly", availabilityHandler.UpdateWeekly)
		secured.GET("/availability/time-slots", availabilityHandler.TimeSlots)
		secured.POST("/availability/exceptions", availabilityHandler.AddExceptions)
		secured.PATCH("/availability/exceptions/:date", availabilityHandler.UpdateException)
		secured.DELETE("/availability/exceptions/:date", availabilityHandler.RemoveException)

		// ------------------------------
		// CALENDAR
		// ------------------------------
		secured.GET("/calendar/week", calendarHandler.Week)
		secured.GET("/calendar/now", calendarHandler.Now)
		secured.GET("/calendar/google/auth-url", calendarHandler.GoogleAuthURL)
		secured.POST("/calendar/google/connect", calendarHandler.ConnectGoogle)

		// ------------------------------
		// INTERVIEWS
		// ------------------------------
		secured.POST("/interviews", interviewHandler.Create)
		secured.GET("/interviews", interviewHandler.List)
		secured.GET("/interviews/:id", interviewHandler.Get)

		drafts := secured.Group("/interviews/drafts")
		{
			drafts.POST("", interviewHandler.CreateDraft)
			drafts.GET("/:id", interviewHandler.GetDraft)
			drafts.PATCH("/:id", interviewHandler.UpdateDraft)
			drafts.POST("/:id/tab", interviewHandler.SwitchTab)
			drafts.POST("/:id/alternate-slots", interviewHandler.AddAlternateSlot)
			drafts.DELETE("/:id/alternate-slots/:index", interviewHandler.RemoveAlternateSlot)
			drafts.POST("/:id/reprogram", interviewHandler.Reprogram)
			drafts.POST("/:id/submit", interviewHandler.SubmitDraft)
		}

		// ------------------------------
		// JOB BOARD STATE
		// ------------------------------
		secured.GET("/saved-jobs", jobStateHandler.ListSavedJobs)
		secured.PUT("/saved-jobs", jobStateHandler.InitSavedJobs)
		secured.DELETE("/saved-jobs", jobStateHandler.ResetSavedJobs)
		secured.POST("/saved-jobs/:jobID", jobStateHandler.SaveJob)
		secured.DELETE("/saved-jobs/:jobID", jobStateHandler.UnsaveJob)

		secured.GET("/recent-searches", jobStateHandler.ListSearches)
		secured.POST("/recent-searches", jobStateHandler.RecordSearch)
		secured.DELETE("/recent-searches", jobStateHandler.ClearSearches)

		secured.GET("/tab-counts", jobStateHandler.GetTabCounts)
		secured.PUT("/tab-counts", jobStateHandler.SetTabCounts)
		secured.DELETE("/tab-counts", jobStateHandler.ResetTabCounts)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}

	return func() {
		searchRecorder.Close()
		auditDispatcher.Close()
	}
}
