package domain

import (
	"context"
	"errors"

	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
)

// ExportFormat represents the output format for run exports.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat accepts csv and json; PDF documents come from Render.
func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(value) {
	case ExportFormatCSV, ExportFormatJSON:
		return ExportFormat(value), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Document is a rendered or exported run ready to be served as a download.
type Document struct {
	Data        []byte
	Checksum    string
	Format      ExportFormat
	ContentType string
	FileName    string
	// Count is the number of seller rows in the document.
	Count int
}

type Service interface {
	// Export serializes the seller summaries of a run.
	Export(ctx context.Context, run *commissiondomain.Run, format ExportFormat) (*Document, error)
	// Render builds the PDF commission report of a run.
	Render(ctx context.Context, run *commissiondomain.Run) (*Document, error)
}

var (
	ErrUnsupportedFormat = errors.New("unsupported_export_format")
	ErrInvalidRun        = errors.New("invalid_run")
)
