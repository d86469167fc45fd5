package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/service"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/response"
)

// FlightHandler exposes flight schedule endpoints.
type FlightHandler struct {
	flights     *service.FlightService
	maxFileSize int64
}

// NewFlightHandler constructs handler.
func NewFlightHandler(flights *service.FlightService, maxFileSize int64) *FlightHandler {
	if maxFileSize <= 0 {
		maxFileSize = 20 * 1024 * 1024
	}
	return &FlightHandler{flights: flights, maxFileSize: maxFileSize}
}

// Import godoc
// @Summary Import a flight schedule file
// @Tags Flights
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX or CSV schedule"
// @Success 201 {object} response.Envelope
// @Router /flights/import [post]
func (h *FlightHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "multipart field \"file\" required"))
		return
	}
	if fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds maximum upload size"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	result, err := h.flights.Import(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List imported flights
// @Tags Flights
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param kind query string false "DEPARTURE or ARRIVAL"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /flights [get]
func (h *FlightHandler) List(c *gin.Context) {
	req := dto.FlightListRequest{
		Kind:      c.Query("kind"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from date, want YYYY-MM-DD"))
			return
		}
		req.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to date, want YYYY-MM-DD"))
			return
		}
		end := to.AddDate(0, 0, 1)
		req.To = &end
	}
	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	result, err := h.flights.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Flights, &result.Pagination)
}
