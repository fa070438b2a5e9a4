package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/pkg/export"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered document ready to be served.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders filtered exam views as downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	clock  Clock
}

// NewExportService constructs an ExportService.
func NewExportService(logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, clock Clock) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, clock: clock}
}

var examExportHeaders = []string{"Name", "Position", "Class", "Subject", "Billing", "Duration (min)", "Cutmark (%)", "Negative Mark", "Live", "Start Date"}

// Exams renders exams in format.
func (s *ExportService) Exams(exams []models.Exam, format string) (*ExportFile, error) {
	data := export.Dataset{Title: "Exam List", Headers: examExportHeaders, Rows: make([][]string, 0, len(exams))}
	for _, e := range exams {
		data.Rows = append(data.Rows, []string{
			e.Name,
			e.Position,
			e.Class.String(),
			e.Subject.String(),
			e.BillingType,
			strconv.Itoa(e.Duration),
			formatNumber(e.Cutmark),
			formatNumber(e.NegativeMark),
			yesNo(e.IsLive),
			formatTimestamp(e.StartDate),
		})
	}

	stamp := s.clock.now().UTC().Format("20060102-150405")
	var (
		file = &ExportFile{}
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		file.Data, err = s.csv.Render(data)
		file.ContentType = "text/csv"
		file.Filename = fmt.Sprintf("exams-%s.csv", stamp)
	case FormatPDF:
		file.Data, err = s.pdf.Render(data)
		file.ContentType = "application/pdf"
		file.Filename = fmt.Sprintf("exams-%s.pdf", stamp)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if err != nil {
		s.logger.Error("exam export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return file, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTimestamp(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format("2006-01-02 15:04")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
