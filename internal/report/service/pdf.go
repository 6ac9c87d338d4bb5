package service

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/report/domain"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleStyle  = props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center}
	metaStyle   = props.Text{Size: 8, Align: align.Center}
	headerStyle = props.Text{Size: 9, Style: fontstyle.Bold, Top: 1.5}
	cellStyle   = props.Text{Size: 9, Top: 1.5}
	amountStyle = props.Text{Size: 9, Top: 1.5, Align: align.Right}
	headerFill  = &props.Cell{BackgroundColor: &props.Color{Red: 220, Green: 220, Blue: 220}}
)

// amounts are printed the way the dealership reads them: R$ 1.234,56.
var amountPrinter = message.NewPrinter(language.BrazilianPortuguese)

func (s *Service) Render(ctx context.Context, run *commissiondomain.Run) (*domain.Document, error) {
	summaries, err := decodeSummaries(run)
	if err != nil {
		return nil, err
	}

	m := buildReport(run, summaries, decodeWarnings(run))
	doc, err := m.Generate()
	if err != nil {
		s.log.Error("render commission report", zap.String("run_id", run.ID), zap.Error(err))
		return nil, fmt.Errorf("render commission report: %w", err)
	}

	data := doc.GetBytes()
	return &domain.Document{
		Data:        data,
		Checksum:    calculateChecksum(data),
		Format:      domain.ExportFormatPDF,
		ContentType: "application/pdf",
		FileName:    fileName(run, domain.ExportFormatPDF),
		Count:       len(summaries),
	}, nil
}

func buildReport(run *commissiondomain.Run, summaries []commissiondomain.SellerSummary, warnings []string) core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithTopMargin(15).
		WithRightMargin(12).
		Build()
	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(10, "Commission report", titleStyle),
		text.NewRow(5, fmt.Sprintf("Run %s - generated %s", run.ID, run.CreatedAt.UTC().Format("2006-01-02 15:04 MST")), metaStyle),
		line.NewRow(6),
	)

	m.AddRows(row.New(7).Add(
		text.NewCol(4, "Seller", headerStyle),
		text.NewCol(2, "Type", headerStyle),
		text.NewCol(1, "Orders", headerStyle),
		text.NewCol(2, "Sales", withAlign(headerStyle, align.Right)),
		text.NewCol(2, "Commission", withAlign(headerStyle, align.Right)),
		text.NewCol(1, "Avg.", withAlign(headerStyle, align.Right)),
	).WithStyle(headerFill))

	for _, summary := range summaries {
		m.AddRow(6,
			text.NewCol(4, summary.SellerName, cellStyle),
			text.NewCol(2, sellerType(summary.IsInternal), cellStyle),
			text.NewCol(1, fmt.Sprintf("%d", summary.OrderCount), cellStyle),
			text.NewCol(2, money(summary.TotalSales), amountStyle),
			text.NewCol(2, money(summary.TotalCommission), amountStyle),
			text.NewCol(1, money(summary.AverageCommission), amountStyle),
		)
	}

	m.AddRows(line.NewRow(4))
	m.AddRow(7,
		text.NewCol(4, "Total", headerStyle),
		text.NewCol(2, fmt.Sprintf("%d sellers", run.SellerCount), cellStyle),
		text.NewCol(1, fmt.Sprintf("%d", run.OrderCount), cellStyle),
		text.NewCol(2, money(run.TotalSales), withAlign(headerStyle, align.Right)),
		text.NewCol(2, money(run.TotalCommission), withAlign(headerStyle, align.Right)),
		text.NewCol(1, "", cellStyle),
	)

	if len(warnings) > 0 {
		m.AddRows(text.NewRow(10, "Warnings", props.Text{Size: 10, Style: fontstyle.Bold, Top: 4}))
		for _, w := range warnings {
			m.AddRows(text.NewRow(5, "- "+w, props.Text{Size: 8}))
		}
	}

	m.AddRows(text.NewRow(8, "Checksum "+run.Checksum, props.Text{Size: 6, Top: 4, Align: align.Right}))
	return m
}

func withAlign(style props.Text, a align.Type) props.Text {
	style.Align = a
	return style
}

func money(v float64) string {
	return amountPrinter.Sprintf("R$ %.2f", v)
}
