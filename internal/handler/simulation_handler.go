package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/service"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/response"
)

// SimulationHandler exposes simulation run endpoints.
type SimulationHandler struct {
	simulations *service.SimulationService
	exports     *service.ExportService
}

// NewSimulationHandler constructs handler.
func NewSimulationHandler(simulations *service.SimulationService, exports *service.ExportService) *SimulationHandler {
	return &SimulationHandler{simulations: simulations, exports: exports}
}

// Create godoc
// @Summary Create and enqueue a simulation run
// @Tags Simulations
// @Accept json
// @Produce json
// @Param request body dto.CreateSimulationRequest true "Run parameters"
// @Success 202 {object} response.Envelope
// @Router /simulations [post]
func (h *SimulationHandler) Create(c *gin.Context) {
	var req dto.CreateSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	run, err := h.simulations.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, run, nil)
}

// Get godoc
// @Summary Run status and summary
// @Tags Simulations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Router /simulations/{id} [get]
func (h *SimulationHandler) Get(c *gin.Context) {
	detail, err := h.simulations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Operations godoc
// @Summary Paginated simulated operations of a finished run
// @Tags Simulations
// @Produce json
// @Param id path string true "Run ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /simulations/{id}/operations [get]
func (h *SimulationHandler) Operations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "100"))

	result, err := h.simulations.Operations(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Operations, &result.Pagination)
}

// Backlog godoc
// @Summary Backlog periods of a finished run
// @Tags Simulations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Router /simulations/{id}/backlog [get]
func (h *SimulationHandler) Backlog(c *gin.Context) {
	result, err := h.simulations.Backlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Download a finished run as CSV or PDF
// @Tags Simulations
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Run ID"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /simulations/{id}/export [get]
func (h *SimulationHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Render(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
