package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gosimple/slug"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type Service struct {
	log *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{log: p.Log.Named("report.service")}
}

func (s *Service) Export(ctx context.Context, run *commissiondomain.Run, format domain.ExportFormat) (*domain.Document, error) {
	summaries, err := decodeSummaries(run)
	if err != nil {
		return nil, err
	}

	var data []byte
	var contentType string
	switch format {
	case domain.ExportFormatCSV:
		data, err = formatCSV(run, summaries)
		contentType = "text/csv"
	case domain.ExportFormatJSON:
		data, err = formatJSON(run, summaries)
		contentType = "application/json"
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Data:        data,
		Checksum:    calculateChecksum(data),
		Format:      format,
		ContentType: contentType,
		FileName:    fileName(run, format),
		Count:       len(summaries),
	}
	s.log.Debug("run exported", zap.String("run_id", run.ID), zap.String("format", string(format)), zap.Int("rows", doc.Count))
	return doc, nil
}

func decodeSummaries(run *commissiondomain.Run) ([]commissiondomain.SellerSummary, error) {
	if run == nil || run.ID == "" {
		return nil, domain.ErrInvalidRun
	}
	var summaries []commissiondomain.SellerSummary
	if len(run.Summaries) > 0 {
		if err := json.Unmarshal(run.Summaries, &summaries); err != nil {
			return nil, fmt.Errorf("decode run summaries: %w", err)
		}
	}
	return summaries, nil
}

func decodeWarnings(run *commissiondomain.Run) []string {
	var warnings []string
	if len(run.Warnings) > 0 {
		if err := json.Unmarshal(run.Warnings, &warnings); err != nil {
			return nil
		}
	}
	return warnings
}

func formatCSV(run *commissiondomain.Run, summaries []commissiondomain.SellerSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"run_id",
		"created_at",
		"seller_name",
		"seller_type",
		"order_count",
		"total_sales",
		"total_commission",
		"average_commission",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		row := []string{
			run.ID,
			run.CreatedAt.UTC().Format(time.RFC3339),
			summary.SellerName,
			sellerType(summary.IsInternal),
			strconv.Itoa(summary.OrderCount),
			formatAmount(summary.TotalSales),
			formatAmount(summary.TotalCommission),
			formatAmount(summary.AverageCommission),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatJSON(run *commissiondomain.Run, summaries []commissiondomain.SellerSummary) ([]byte, error) {
	type exportRun struct {
		RunID           string                           `json:"run_id"`
		CreatedAt       string                           `json:"created_at"`
		SellerCount     int                              `json:"seller_count"`
		OrderCount      int                              `json:"order_count"`
		TotalSales      float64                          `json:"total_sales"`
		TotalCommission float64                          `json:"total_commission"`
		Checksum        string                           `json:"summary_checksum"`
		Sellers         []commissiondomain.SellerSummary `json:"sellers"`
		Warnings        []string                         `json:"warnings"`
	}

	if summaries == nil {
		summaries = []commissiondomain.SellerSummary{}
	}
	warnings := decodeWarnings(run)
	if warnings == nil {
		warnings = []string{}
	}
	return json.MarshalIndent(exportRun{
		RunID:           run.ID,
		CreatedAt:       run.CreatedAt.UTC().Format(time.RFC3339),
		SellerCount:     run.SellerCount,
		OrderCount:      run.OrderCount,
		TotalSales:      run.TotalSales,
		TotalCommission: run.TotalCommission,
		Checksum:        run.Checksum,
		Sellers:         summaries,
		Warnings:        warnings,
	}, "", "  ")
}

func sellerType(internal bool) string {
	if internal {
		return "internal"
	}
	return "external"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// fileName is "commission-run-<date>-<run id>.<ext>", slugged.
func fileName(run *commissiondomain.Run, format domain.ExportFormat) string {
	base := slug.Make(fmt.Sprintf("commission run %s %s", run.CreatedAt.UTC().Format("2006-01-02"), run.ID))
	return base + "." + string(format)
}

func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
