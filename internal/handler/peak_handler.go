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

// PeakHandler exposes peak-period table endpoints.
type PeakHandler struct {
	peaks *service.PeakService
}

// NewPeakHandler constructs handler.
func NewPeakHandler(peaks *service.PeakService) *PeakHandler {
	return &PeakHandler{peaks: peaks}
}

// Rebuild godoc
// @Summary Rebuild the peak table from historical delays
// @Tags Peaks
// @Accept json
// @Produce json
// @Param request body dto.RebuildPeaksRequest true "Date range"
// @Success 200 {object} response.Envelope
// @Router /peaks/rebuild [post]
func (h *PeakHandler) Rebuild(c *gin.Context) {
	var req dto.RebuildPeaksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid fromDate, want YYYY-MM-DD"))
		return
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid toDate, want YYYY-MM-DD"))
		return
	}
	if to.Before(from) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "toDate must not precede fromDate"))
		return
	}
	result, err := h.peaks.Rebuild(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary Current peak table entries
// @Tags Peaks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /peaks [get]
func (h *PeakHandler) List(c *gin.Context) {
	result, err := h.peaks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
