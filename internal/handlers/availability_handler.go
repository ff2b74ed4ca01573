package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	getSettings  *ucAvailability.GetSettings
	saveSettings *ucAvailability.SaveSettings
	exceptions   *ucAvailability.Exceptions
}

func NewAvailabilityHandler(
	getSettings *ucAvailability.GetSettings,
	saveSettings *ucAvailability.SaveSettings,
	exceptions *ucAvailability.Exceptions,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getSettings:  getSettings,
		saveSettings: saveSettings,
		exceptions:   exceptions,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddExceptionsRequest struct {
	Dates []string `json:"dates" binding:"required"`
}

type UpdateWeeklyRequest struct {
	Weekly domain.Weekly `json:"weekly_availability"`
}

type UpdateWeeklyResponse struct {
	Message string        `json:"message"`
	Weekly  domain.Weekly `json:"weekly_availability"`
}

type SaveSettingsResponse struct {
	Message  string          `json:"message"`
	Settings domain.Settings `json:"settings"`
}

// ======================================================
// SETTINGS
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	s, err := h.getSettings.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.saveSettings.Execute(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, SaveSettingsResponse{Message: msg, Settings: req})
}

// UpdateWeekly saves the recurring template alone.
func (h *AvailabilityHandler) UpdateWeekly(c *gin.Context) {
	var req UpdateWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.saveSettings.ExecuteWeekly(c.Request.Context(), middleware.UserID(c), req.Weekly)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, UpdateWeeklyResponse{Message: msg, Weekly: req.Weekly})
}

func (h *AvailabilityHandler) TimeSlots(c *gin.Context) {
	httpresp.List(c, domain.TimeSlots())
}

// ======================================================
// EXCEPTIONS
// ======================================================

func (h *AvailabilityHandler) AddExceptions(c *gin.Context) {
	var req AddExceptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.exceptions.Add(c.Request.Context(), middleware.UserID(c), req.Dates)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *AvailabilityHandler) UpdateException(c *gin.Context) {
	var req ucAvailability.UpdateExceptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.exceptions.Update(c.Request.Context(), middleware.UserID(c), c.Param("date"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *AvailabilityHandler) RemoveException(c *gin.Context) {
	s, err := h.exceptions.Remove(c.Request.Context(), middleware.UserID(c), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, s)
}
