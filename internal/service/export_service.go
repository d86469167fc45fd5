package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/airside-lab/runwaysim-api/pkg/errors"
	"github.com/airside-lab/runwaysim-api/pkg/export"
)

// ExportFormat identifies a supported download format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders a finished run's operations for download.
type ExportService struct {
	runs    simulationStore
	sims    *SimulationService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	maxRows int
	logger  *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(runs simulationStore, sims *SimulationService, maxRows int, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 50000
	}
	return &ExportService{
		runs:    runs,
		sims:    sims,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		maxRows: maxRows,
		logger:  logger,
	}
}

var exportHeaders = []string{
	"flight_number", "aircraft_type", "wake_category", "kind", "runway",
	"scheduled_time", "simulated_time", "delay_minutes", "disrupted", "load_class",
}

// Render produces the run's operation table in the requested format.
func (s *ExportService) Render(ctx context.Context, runID string, format ExportFormat) (*ExportResult, error) {
	run, err := s.sims.requireFinished(ctx, runID)
	if err != nil {
		return nil, err
	}

	operations, err := s.runs.AllOperations(ctx, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load simulated operations")
	}
	if len(operations) > s.maxRows {
		operations = operations[:s.maxRows]
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(operations))}
	for _, op := range operations {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"flight_number":  op.FlightNumber,
			"aircraft_type":  op.AircraftType,
			"wake_category":  string(op.WakeCategory),
			"kind":           string(op.Kind),
			"runway":         strconv.Itoa(op.AssignedRunway),
			"scheduled_time": op.ScheduledTime.Format("2006-01-02 15:04:05"),
			"simulated_time": op.SimulatedTime.Format("2006-01-02 15:04:05"),
			"delay_minutes":  strconv.FormatFloat(op.DelayMinutes, 'f', 2, 64),
			"disrupted":      strconv.FormatBool(op.DisruptionFlag),
			"load_class":     string(op.LoadClass),
		})
	}

	title := fmt.Sprintf("Runway simulation %s to %s",
		run.FromDate.Format("2006-01-02"), run.ToDate.Format("2006-01-02"))
	basename := fmt.Sprintf("simulation-%s", runID)

	switch ExportFormat(strings.ToLower(string(format))) {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: basename + ".csv"}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: basename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
