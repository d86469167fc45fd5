package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/models"
	"github.com/airside-lab/runwaysim-api/internal/service"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/response"
)

type flightRepoStub struct {
	created []models.FlightOperation
}

func (r *flightRepoStub) BulkCreate(ctx context.Context, flights []models.FlightOperation) (int, error) {
	r.created = append(r.created, flights...)
	return len(flights), nil
}

func (r *flightRepoStub) List(ctx context.Context, filter models.FlightFilter) ([]models.FlightOperation, int, error) {
	return nil, 0, nil
}

type disruptionRepoStub struct {
	periods map[string]*models.DisruptionPeriod
}

func newDisruptionRepoStub() *disruptionRepoStub {
	return &disruptionRepoStub{periods: map[string]*models.DisruptionPeriod{}}
}

func (r *disruptionRepoStub) Create(ctx context.Context, period *models.DisruptionPeriod) error {
	if period.ID == "" {
		period.ID = "d-1"
	}
	r.periods[period.ID] = period
	return nil
}

func (r *disruptionRepoStub) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.DisruptionPeriod, error) {
	var out []models.DisruptionPeriod
	for _, p := range r.periods {
		out = append(out, *p)
	}
	return out, nil
}

func (r *disruptionRepoStub) FindByID(ctx context.Context, id string) (*models.DisruptionPeriod, error) {
	p, ok := r.periods[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return p, nil
}

func (r *disruptionRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.periods[id]; !ok {
		return appErrors.ErrNotFound
	}
	delete(r.periods, id)
	return nil
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDisruptionHandlerLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewDisruptionService(newDisruptionRepoStub(), nil, zap.NewNop())
	h := NewDisruptionHandler(svc)

	router := gin.New()
	router.POST("/disruptions", h.Create)
	router.GET("/disruptions", h.List)
	router.DELETE("/disruptions/:id", h.Delete)

	payload, _ := json.Marshal(map[string]interface{}{
		"kind":      "SUSPENSION",
		"date":      "2024-07-01",
		"startTime": "10:00",
		"endTime":   "12:00",
	})
	w := performRequest(t, router, http.MethodPost, "/disruptions", payload, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	var created response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	data, ok := created.Data.(map[string]interface{})
	require.True(t, ok)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)

	w = performRequest(t, router, http.MethodGet, "/disruptions?from=2024-07-01&to=2024-07-01", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodDelete, "/disruptions/"+id, nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(t, router, http.MethodDelete, "/disruptions/"+id, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDisruptionHandlerRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewDisruptionService(newDisruptionRepoStub(), nil, zap.NewNop())
	h := NewDisruptionHandler(svc)

	router := gin.New()
	router.POST("/disruptions", h.Create)
	router.GET("/disruptions", h.List)

	w := performRequest(t, router, http.MethodPost, "/disruptions", []byte("{not json"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload, _ := json.Marshal(map[string]interface{}{
		"kind":      "EFFICIENCY",
		"date":      "2024-07-01",
		"startTime": "10:00",
		"endTime":   "12:00",
	})
	w = performRequest(t, router, http.MethodPost, "/disruptions", payload, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodGet, "/disruptions?from=bad&to=2024-07-01", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandlerImportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &flightRepoStub{}
	svc := service.NewFlightService(repo, "", zap.NewNop())
	h := NewFlightHandler(svc, 0)

	router := gin.New()
	router.POST("/flights/import", h.Import)
	router.GET("/flights", h.List)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "schedule.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(strings.Join([]string{
		"flight_number,aircraft_type,kind,scheduled_time",
		"CZ3101,738,DEPARTURE,2024-07-01 08:00",
	}, "\n")))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	w := performRequest(t, router, http.MethodPost, "/flights/import", body.Bytes(), form.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)

	w = performRequest(t, router, http.MethodPost, "/flights/import", nil, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodGet, "/flights?from=notadate", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodGet, "/flights?from=2024-07-01&to=2024-07-02", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
