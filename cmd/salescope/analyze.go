package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillium/salescope/internal/analytics"
	"github.com/quillium/salescope/internal/catalog"
	"github.com/quillium/salescope/internal/cli"
	"github.com/quillium/salescope/internal/common"
	"github.com/quillium/salescope/internal/enrich"
	"github.com/quillium/salescope/internal/ingest"
	"github.com/quillium/salescope/internal/model"
	"github.com/quillium/salescope/internal/report"
	"github.com/quillium/salescope/internal/validate"
)

const totalSteps = 10

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the sales analytics pipeline over a sales data file",
		Long: `Run the full batch pipeline: read and parse the sales file, validate and
optionally filter the records, compute the sales analyses, enrich the
transactions against the remote product catalog, and write the enriched data
file plus the formatted report.

Examples:
  # Interactive run over the default input file
  salescope analyze

  # Unattended run with filters supplied up front
  salescope analyze --no-input --region North --min-amount 100

  # Custom paths and an Excel copy of the enriched data
  salescope analyze -i exports/q3.txt --report out/q3_report.txt --xlsx out/q3.xlsx`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("input", "i", "data/sales_data.txt", "sales data file")
	cmd.Flags().String("enriched", "data/enriched_sales_data.txt", "enriched data output file")
	cmd.Flags().String("report", "output/sales_report.txt", "report output file")
	cmd.Flags().String("xlsx", "", "optional Excel export of the enriched data")
	cmd.Flags().Bool("no-input", false, "skip interactive prompts")
	cmd.Flags().String("region", "", "keep only transactions from this region")
	cmd.Flags().String("min-amount", "", "inclusive minimum transaction amount")
	cmd.Flags().String("max-amount", "", "inclusive maximum transaction amount")
	cmd.Flags().Int("top", analytics.DefaultTopN, "number of products/customers in the top tables")
	cmd.Flags().Int("low-threshold", analytics.DefaultLowThreshold, "quantity below which a product is low-performing")

	_ = viper.BindPFlag("input.path", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output.enriched", cmd.Flags().Lookup("enriched"))
	_ = viper.BindPFlag("output.report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("output.xlsx", cmd.Flags().Lookup("xlsx"))
	_ = viper.BindPFlag("analysis.top_products", cmd.Flags().Lookup("top"))
	_ = viper.BindPFlag("analysis.low_threshold", cmd.Flags().Lookup("low-threshold"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	runID := uuid.New().String()[:8]
	log := slog.With("run_id", runID)

	inputPath := viper.GetString("input.path")
	currency := viper.GetString("report.currency")

	fmt.Fprintln(out, cli.FormatTitle("SALES ANALYTICS SYSTEM"))

	// [1] Read.
	fmt.Fprintln(out, cli.FormatStep(1, totalSteps, "Reading sales data..."))
	lines, err := ingest.ReadSalesData(inputPath)
	if err != nil {
		// Per-run recoverable: continue with an empty record set.
		common.LogError(err, "could not read sales data, continuing with empty record set",
			common.Fields{"path": inputPath, "run_id": runID})
		fmt.Fprintln(out, cli.FormatError("Could not read input file"))
		lines = nil
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Read %d data lines", len(lines))))

	// [2] Parse.
	fmt.Fprintln(out, cli.FormatStep(2, totalSteps, "Parsing and cleaning data..."))
	parsed := parseWithProgress(lines)
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Parsed %d records", len(parsed))))

	// [3] Filter options.
	fmt.Fprintln(out, cli.FormatStep(3, totalSteps, "Gathering filter options..."))
	opts, err := gatherFilters(cmd, parsed, currency)
	if err != nil {
		return err
	}

	// [4] Validate and filter.
	fmt.Fprintln(out, cli.FormatStep(4, totalSteps, "Validating transactions..."))
	filtered, invalid, summary := validate.ValidateAndFilter(parsed, opts)
	log.Info("validation complete",
		"total_input", summary.TotalInput,
		"invalid", invalid,
		"filtered_by_region", summary.FilteredByRegion,
		"filtered_by_amount", summary.FilteredByAmount,
		"final_count", summary.FinalCount)
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Valid: %d | Invalid: %d", summary.FinalCount, invalid)))

	// [5] Analysis.
	fmt.Fprintln(out, cli.FormatStep(5, totalSteps, "Analyzing sales data..."))
	logAnalysis(log, filtered)
	fmt.Fprintln(out, cli.FormatSuccess("Analysis complete"))

	// [6] Catalog fetch.
	fmt.Fprintln(out, cli.FormatStep(6, totalSteps, "Fetching product data from catalog..."))
	client := catalog.NewClient(
		viper.GetString("catalog.url"),
		viper.GetInt("catalog.limit"),
		viper.GetDuration("catalog.timeout"))
	products, err := client.FetchProducts(ctx)
	if err != nil {
		// One attempt, no retry: a failed fetch degrades to zero matches.
		log.Warn("catalog fetch failed, continuing without enrichment", "error", err)
		fmt.Fprintln(out, cli.FormatError("Catalog unavailable"))
		products = nil
	}
	mapping := catalog.NewMapping(products)
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Fetched %d products", mapping.Len())))

	// [7] Enrich.
	fmt.Fprintln(out, cli.FormatStep(7, totalSteps, "Enriching sales data..."))
	enriched := enrich.Enrich(filtered, mapping)
	matched := 0
	for _, row := range enriched {
		if row.APIMatch {
			matched++
		}
	}
	rate := 0.0
	if len(enriched) > 0 {
		rate = float64(matched) / float64(len(enriched)) * 100
	}
	fmt.Fprintln(out, cli.FormatSuccess(
		fmt.Sprintf("Enriched %d/%d transactions (%.1f%%)", matched, len(enriched), rate)))

	// [8] Save enriched data.
	fmt.Fprintln(out, cli.FormatStep(8, totalSteps, "Saving enriched data..."))
	enrichedPath := viper.GetString("output.enriched")
	if err := report.WriteEnriched(enrichedPath, enriched); err != nil {
		return common.NewUserError("failed to save enriched data", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Saved to: "+enrichedPath))

	if xlsxPath := viper.GetString("output.xlsx"); xlsxPath != "" {
		if err := report.WriteEnrichedXLSX(xlsxPath, enriched); err != nil {
			log.Warn("xlsx export failed", "path", xlsxPath, "error", err)
		} else {
			fmt.Fprintln(out, cli.FormatSuccess("Saved workbook to: "+xlsxPath))
		}
	}

	// [9] Report.
	fmt.Fprintln(out, cli.FormatStep(9, totalSteps, "Generating report..."))
	composer := report.NewComposer(currency)
	composer.TopN = viper.GetInt("analysis.top_products")
	composer.LowThreshold = viper.GetInt("analysis.low_threshold")

	reportPath := viper.GetString("output.report")
	if err := report.WriteReport(reportPath, composer.Compose(filtered, enriched)); err != nil {
		return common.NewUserError("failed to save report", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess("Report saved to: "+reportPath))

	// [10] Done.
	fmt.Fprintln(out, cli.FormatStep(10, totalSteps, "Process complete!"))
	common.LogInfo("run complete", common.Fields{
		"run_id":        runID,
		"records":       summary.FinalCount,
		"enriched":      matched,
		"report":        reportPath,
		"enriched_file": enrichedPath,
	})

	return nil
}

func parseWithProgress(lines []string) []model.Transaction {
	if len(lines) == 0 {
		return nil
	}

	bar := progressbar.Default(int64(len(lines)), "parsing")
	parsed := make([]model.Transaction, 0, len(lines))
	for _, line := range lines {
		if tx, ok := ingest.ParseLine(line); ok {
			parsed = append(parsed, tx)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return parsed
}

// logAnalysis runs the analyses over the validated set and logs their
// headline numbers. The report composer recomputes them at write time.
func logAnalysis(log *slog.Logger, transactions []model.Transaction) {
	totalRevenue := analytics.TotalRevenue(transactions)
	regions := analytics.RegionWiseSales(transactions)
	topProducts := analytics.TopSellingProducts(transactions, viper.GetInt("analysis.top_products"))
	customers := analytics.CustomerAnalysis(transactions)
	daily := analytics.DailySalesTrend(transactions)
	peak := analytics.FindPeakSalesDay(transactions)
	low := analytics.LowPerformingProducts(transactions, viper.GetInt("analysis.low_threshold"))

	fields := []any{
		"total_revenue", totalRevenue.String(),
		"regions", len(regions),
		"top_products", len(topProducts),
		"customers", len(customers),
		"active_days", len(daily),
		"low_performers", len(low),
	}
	if peak != nil {
		fields = append(fields, "peak_day", peak.Date, "peak_revenue", peak.Revenue.String())
	}
	log.Info("analysis complete", fields...)
}
