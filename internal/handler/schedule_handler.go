package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studyflow/scheduler-api/internal/dto"
	"github.com/studyflow/scheduler-api/internal/service"
	appErrors "github.com/studyflow/scheduler-api/pkg/errors"
	"github.com/studyflow/scheduler-api/pkg/response"
)

// maxCalendarDays bounds the accepted planning window.
const maxCalendarDays = 366

type activityScheduler interface {
	Schedule(ctx context.Context, req dto.ScheduleActivityRequest) (*dto.ScheduleActivityResponse, error)
	Proposal(id string) (*dto.ScheduleActivityResponse, error)
	ExportProposal(id, format string, solution int) ([]byte, string, error)
}

// ScheduleHandler exposes the scheduling endpoints.
type ScheduleHandler struct {
	service       activityScheduler
	exportEnabled bool
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.SchedulingService, exportEnabled bool) *ScheduleHandler {
	return &ScheduleHandler{service: svc, exportEnabled: exportEnabled}
}

// Schedule godoc
// @Summary Assign an activity's estimated hours to calendar days
// @Description Searches the requested end date and a small neighbourhood around it for feasible hour assignments under the active strategy.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleActivityRequest true "Activity and calendar window"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /scheduler/logic/activity [post]
func (h *ScheduleHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	if len(req.Calendar) > maxCalendarDays {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "calendar exceeds the supported window length"))
		return
	}
	result, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, result.Result, result)
}

// Proposal godoc
// @Summary Fetch a retained scheduling proposal
// @Tags Scheduler
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /scheduler/proposals/{id} [get]
func (h *ScheduleHandler) Proposal(c *gin.Context) {
	result, err := h.service.Proposal(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export one solution of a retained proposal
// @Tags Scheduler
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Proposal ID"
// @Param format query string false "csv or pdf" default(csv)
// @Param solution query int false "Solution index" default(0)
// @Success 200 {file} binary
// @Router /scheduler/proposals/{id}/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is disabled"))
		return
	}
	solution := 0
	if raw := c.Query("solution"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "solution must be an integer"))
			return
		}
		solution = parsed
	}
	payload, contentType, err := h.service.ExportProposal(c.Param("id"), c.DefaultQuery("format", "csv"), solution)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, payload)
}
