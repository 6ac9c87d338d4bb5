package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	"github.com/railzwaylabs/commissions/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ledgerSales     = "sales"
	ledgerProposals = "proposals"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "import sales|proposals <file>",
		Short:     "Replace a ledger with the rows of a CSV export",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{ledgerSales, ledgerProposals},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if kind != ledgerSales && kind != ledgerProposals {
				return fmt.Errorf("unknown ledger %q, expected %s or %s", kind, ledgerSales, ledgerProposals)
			}

			var ledgerSvc ledgerdomain.Service
			return runOneShot(func(ctx context.Context) error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				req := ledgerdomain.IngestRequest{FileName: filepath.Base(path), Content: f}
				var res *ledgerdomain.IngestResult
				if kind == ledgerSales {
					res, err = ledgerSvc.IngestSales(ctx, req)
				} else {
					res, err = ledgerSvc.IngestProposals(ctx, req)
				}
				if err != nil {
					return fmt.Errorf("import %s: %w", kind, err)
				}
				printIngest(cmd.OutOrStdout(), res)
				return nil
			}, &ledgerSvc)
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "summary sellers|cities",
		Short:     "Print commission totals per seller or per city",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"sellers", "cities"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var commissionSvc commissiondomain.Service
			switch args[0] {
			case "sellers":
				return runOneShot(func(ctx context.Context) error {
					summaries, err := commissionSvc.ComputeSellerSummary(ctx)
					if err != nil {
						return err
					}
					printSellerSummary(cmd.OutOrStdout(), summaries)
					return nil
				}, &commissionSvc)
			case "cities":
				return runOneShot(func(ctx context.Context) error {
					result, err := commissionSvc.ComputeCitySummary(ctx)
					if err != nil {
						return err
					}
					printCitySummary(cmd.OutOrStdout(), result)
					return nil
				}, &commissionSvc)
			default:
				return fmt.Errorf("unknown summary %q, expected sellers or cities", args[0])
			}
		},
	}
}

func newSeedTiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-tiers",
		Short: "Store the built-in rate schedule as tiers when none exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				tierSvc ratetierdomain.Service
				log     *zap.Logger
			)
			return runOneShot(func(ctx context.Context) error {
				created, err := seed.EnsureDefaultRateTiers(ctx, tierSvc, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d rate tiers created\n", created)
				return nil
			}, &tierSvc, &log)
		},
	}
}

var printer = message.NewPrinter(language.BrazilianPortuguese)

func printIngest(w io.Writer, res *ledgerdomain.IngestResult) {
	fmt.Fprintf(w, "%s ledger replaced from %s: %d rows (batch %s)\n", res.Kind, res.FileName, res.Rows, res.BatchID)
	if res.Sellers != nil {
		fmt.Fprintf(w, "sellers: %d created, %d updated\n", len(res.Sellers.Created), len(res.Sellers.Updated))
	}
	if res.VehicleModels != nil {
		fmt.Fprintf(w, "vehicle models: %d created\n", len(res.VehicleModels.Created))
	}
	if res.PaymentMethods != nil {
		fmt.Fprintf(w, "payment methods: %d created\n", len(res.PaymentMethods.Created))
	}
}

func printSellerSummary(w io.Writer, summaries []commissiondomain.SellerSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SELLER\tTYPE\tORDERS\tSALES\tCOMMISSION\tAVERAGE")
	for _, s := range summaries {
		kind := "external"
		if s.IsInternal {
			kind = "internal"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			s.SellerName, kind, s.OrderCount, money(s.TotalSales), money(s.TotalCommission), money(s.AverageCommission))
	}
	_ = tw.Flush()
}

func printCitySummary(w io.Writer, result *commissiondomain.CitySummaryResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CITY\tORDERS\tSALES\tCOMMISSION\tAVERAGE")
	for _, c := range result.Cities {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			c.City, c.OrderCount, money(c.TotalSales), money(c.TotalCommission), money(c.AverageCommission))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d orders recorded, %d rejected, %d proposal rows rejected\n",
		result.Recorded, result.Rejected, result.RejectedRecords)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func money(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}
