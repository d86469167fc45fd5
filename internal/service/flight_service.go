package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/airside-lab/runwaysim-api/internal/dto"
	"github.com/airside-lab/runwaysim-api/internal/models"
	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
)

type flightRepository interface {
	BulkCreate(ctx context.Context, flights []models.FlightOperation) (int, error)
	List(ctx context.Context, filter models.FlightFilter) ([]models.FlightOperation, int, error)
}

// FlightService ingests flight schedules and serves listings.
type FlightService struct {
	repo      flightRepository
	sheetName string
	logger    *zap.Logger
}

// NewFlightService constructs the service.
func NewFlightService(repo flightRepository, sheetName string, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &FlightService{repo: repo, sheetName: sheetName, logger: logger}
}

// Expected import columns, by header name. The actual_time column is optional
// and may be empty per row.
var importColumns = []string{"flight_number", "aircraft_type", "kind", "scheduled_time", "actual_time"}

var importTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Import parses an uploaded XLSX or CSV schedule and stores its rows.
func (s *FlightService) Import(ctx context.Context, filename string, file io.Reader) (*dto.FlightImportResponse, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = s.readXLSX(file)
	case ".csv":
		records, err = readCSV(file)
	default:
		return nil, appErrors.Clone(appErrors.ErrImportFormat, fmt.Sprintf("unsupported file extension %q", filepath.Ext(filename)))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "failed to parse schedule file")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrImportFormat, "schedule file is empty")
	}

	columns, err := mapImportHeader(records[0])
	if err != nil {
		return nil, err
	}

	flights := make([]models.FlightOperation, 0, len(records)-1)
	var warnings []string
	for i, record := range records[1:] {
		flight, err := parseImportRow(record, columns)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		flights = append(flights, *flight)
	}

	inserted, err := s.repo.BulkCreate(ctx, flights)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store imported flights")
	}

	s.logger.Info("flight schedule imported",
		zap.String("file", filename),
		zap.Int("imported", inserted),
		zap.Int("skipped", len(warnings)))

	return &dto.FlightImportResponse{Imported: inserted, Skipped: len(warnings), Warnings: warnings}, nil
}

// List returns flights matching the request filters.
func (s *FlightService) List(ctx context.Context, req dto.FlightListRequest) (*dto.FlightListResponse, error) {
	filter := models.FlightFilter{
		From:      req.From,
		To:        req.To,
		Kind:      models.OperationKind(strings.ToUpper(req.Kind)),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Kind != "" && filter.Kind != models.OperationDeparture && filter.Kind != models.OperationArrival {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown operation kind %q", req.Kind))
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	flights, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list flights")
	}
	return &dto.FlightListResponse{
		Flights:    flights,
		Pagination: models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total},
	}, nil
}

func (s *FlightService) readXLSX(file io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close() //nolint:errcheck

	sheet := s.sheetName
	if idx, _ := book.GetSheetIndex(sheet); idx < 0 {
		sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func mapImportHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range importColumns[:4] {
		if _, ok := columns[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrImportFormat, fmt.Sprintf("missing column %q", required))
		}
	}
	return columns, nil
}

func parseImportRow(record []string, columns map[string]int) (*models.FlightOperation, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	flightNumber := cell("flight_number")
	aircraftType := cell("aircraft_type")
	if flightNumber == "" || aircraftType == "" {
		return nil, fmt.Errorf("flight_number and aircraft_type are required")
	}

	kind := models.OperationKind(strings.ToUpper(cell("kind")))
	if kind != models.OperationDeparture && kind != models.OperationArrival {
		return nil, fmt.Errorf("unknown operation kind %q", cell("kind"))
	}

	scheduled, err := parseImportTime(cell("scheduled_time"))
	if err != nil {
		return nil, fmt.Errorf("scheduled_time: %w", err)
	}

	flight := &models.FlightOperation{
		FlightNumber:  flightNumber,
		AircraftType:  strings.ToUpper(aircraftType),
		Kind:          kind,
		ScheduledTime: scheduled,
	}
	if raw := cell("actual_time"); raw != "" {
		actual, err := parseImportTime(raw)
		if err != nil {
			return nil, fmt.Errorf("actual_time: %w", err)
		}
		flight.ActualTime = &actual
	}
	return flight, nil
}

func parseImportTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range importTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
