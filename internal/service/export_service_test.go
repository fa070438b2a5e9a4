package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellixel001/suvashpanel/pkg/export"
	appErrors "github.com/intellixel001/suvashpanel/pkg/errors"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) { return nil, errors.New("disk full") }

func TestExportExamsCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil, fixedClock)
	exams := sampleExams()
	exams[0].StartDate = at("2025-03-02T10:00:00Z")
	exams[0].NegativeMark = 0.25

	file, err := svc.Exams(exams, "CSV")
	require.NoError(t, err)
	assert.Equal(t, "exams-20250301-090000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, examExportHeaders, records[0])
	assert.Equal(t, "Weekly Physics", records[1][0])
	assert.Equal(t, "0.25", records[1][7])
	assert.Equal(t, "yes", records[1][8])
	assert.Equal(t, "2025-03-02 10:00", records[1][9])
	assert.Equal(t, "", records[2][9])
}

func TestExportExamsPDF(t *testing.T) {
	svc := NewExportService(nil, nil, nil, fixedClock)
	file, err := svc.Exams(sampleExams(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "exams-20250301-090000.pdf", file.Filename)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(nil, nil, nil, fixedClock)
	_, err := svc.Exams(sampleExams(), "xlsx")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestExportRenderFailure(t *testing.T) {
	svc := NewExportService(nil, failingRenderer{}, nil, fixedClock)
	_, err := svc.Exams(sampleExams(), "csv")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInternal.Code))
}
