package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/export"
)

type rosterReader interface {
	ListActiveByClass(ctx context.Context, classID string) ([]models.Child, error)
}

type progressReader interface {
	ListByDate(ctx context.Context, date string) ([]models.ProgressRecord, error)
}

// ExportService renders the attendance sheet for one session date from the
// local store, for the coordinator's records.
type ExportService struct {
	roster   rosterReader
	progress progressReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the exporter.
func NewExportService(roster rosterReader, progress progressReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster:   roster,
		progress: progress,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// AttendanceCSV renders the session sheet as CSV.
func (s *ExportService) AttendanceCSV(ctx context.Context, classID, date string) ([]byte, error) {
	data, err := s.dataset(ctx, classID, date)
	if err != nil {
		return nil, err
	}
	return s.csv.Render(data)
}

// AttendancePDF renders the session sheet as a printable PDF.
func (s *ExportService) AttendancePDF(ctx context.Context, classID, date string) ([]byte, error) {
	data, err := s.dataset(ctx, classID, date)
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(data, "Attendance "+date)
}

func (s *ExportService) dataset(ctx context.Context, classID, date string) (export.Dataset, error) {
	children, err := s.roster.ListActiveByClass(ctx, classID)
	if err != nil {
		return export.Dataset{}, err
	}
	records, err := s.progress.ListByDate(ctx, date)
	if err != nil {
		return export.Dataset{}, err
	}

	byChild := make(map[string]models.ProgressRecord, len(records))
	for _, record := range records {
		byChild[record.ChildID] = record
	}

	data := export.Dataset{Headers: []string{"Child", "Date", "Attended", "Evidence", "Synced"}}
	for _, child := range children {
		row := map[string]string{
			"Child":    child.FullName,
			"Date":     date,
			"Attended": "no",
			"Evidence": models.EvidenceNone,
			"Synced":   "",
		}
		if record, ok := byChild[child.ID]; ok {
			row["Attended"] = boolWord(record.Attended)
			row["Evidence"] = record.EvidenceStatus
			row["Synced"] = boolWord(record.SyncState == models.SyncStateSynced)
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
