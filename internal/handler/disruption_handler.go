package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/service"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/response"
)

// DisruptionHandler exposes disruption period endpoints.
type DisruptionHandler struct {
	disruptions *service.DisruptionService
}

// NewDisruptionHandler constructs handler.
func NewDisruptionHandler(disruptions *service.DisruptionService) *DisruptionHandler {
	return &DisruptionHandler{disruptions: disruptions}
}

// Create godoc
// @Summary Register a disruption period
// @Tags Disruptions
// @Accept json
// @Produce json
// @Param request body dto.CreateDisruptionRequest true "Disruption period"
// @Success 201 {object} response.Envelope
// @Router /disruptions [post]
func (h *DisruptionHandler) Create(c *gin.Context) {
	var req dto.CreateDisruptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	period, err := h.disruptions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// List godoc
// @Summary List disruption periods in a date range
// @Tags Disruptions
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /disruptions [get]
func (h *DisruptionHandler) List(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from date required, want YYYY-MM-DD"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to date required, want YYYY-MM-DD"))
		return
	}
	periods, err := h.disruptions.List(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Delete godoc
// @Summary Remove a disruption period
// @Tags Disruptions
// @Param id path string true "Disruption ID"
// @Success 204
// @Router /disruptions/{id} [delete]
func (h *DisruptionHandler) Delete(c *gin.Context) {
	if err := h.disruptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
