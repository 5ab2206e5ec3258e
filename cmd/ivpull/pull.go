package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/komsit37/ivpull/pkg/ivpull/config"
	"github.com/komsit37/ivpull/pkg/ivpull/extract"
	"github.com/komsit37/ivpull/pkg/ivpull/pipeline"
	"github.com/komsit37/ivpull/pkg/ivpull/render"
	"github.com/komsit37/ivpull/pkg/ivpull/report"
	"github.com/komsit37/ivpull/pkg/ivpull/ticker"
	"github.com/komsit37/ivpull/pkg/ivpull/types"
	"github.com/komsit37/ivpull/pkg/ivpull/yahoo"
)

// validateTimeout bounds the single quote lookup used to reject dead
// tickers; the full extraction deadline is configured separately.
const validateTimeout = 5 * time.Second

func newPullCmd(cfg *config.Config) *cobra.Command {
	var (
		outDir      string
		workers     int
		timeout     time.Duration
		withHistory bool
	)

	cmd := &cobra.Command{
		Use:   "pull [ticker]",
		Short: "Fetch per-ticker fundamentals and write CSV reports",
		Long: `Pull fetches valuation ratios, balance-sheet and cash-flow line items
for one ticker or a CSV list of tickers, renders a per-ticker summary
table, and exports the results to CSV on request.

With a positional ticker the run is non-interactive: the trailing
3-year close price is included and the report is exported
automatically. Without arguments pull prompts for a ticker or CSV path
and asks before exporting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			single := len(args) == 1
			var input string
			if single {
				input = args[0]
				withHistory = true
			} else {
				fmt.Println("=== Yahoo Finance Value Investing Financials Data Exporter ===")
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Ticker or CSV").
						Description("Single ticker (e.g., AAPL, 0700.HK) or CSV file path (one ticker per row)").
						Value(&input),
				))
				if err := form.Run(); err != nil {
					return err
				}
			}

			tickers, err := ticker.Load(input)
			if err != nil {
				return err
			}

			client := yahoo.NewClient(yahoo.Config{
				QuoteSummaryURL: cfg.QuoteSummaryURL,
				TimeseriesURL:   cfg.TimeseriesURL,
				ChartURL:        cfg.ChartURL,
			})
			var opts []extract.Option
			if withHistory {
				opts = append(opts, extract.WithHistory())
			}
			runner := &pipeline.Runner{
				Validator: yahoo.NewValidator(validateTimeout),
				Extractor: extract.New(client, opts...),
				Workers:   workers,
				Timeout:   timeout,
				Logger:    log.Logger,
			}

			var (
				pw      progress.Writer
				tracker *progress.Tracker
			)
			if len(tickers) > 1 {
				pw = progress.NewWriter()
				pw.SetOutputWriter(os.Stderr)
				pw.SetTrackerLength(25)
				tracker = &progress.Tracker{Message: "Processing tickers", Total: int64(len(tickers))}
				pw.AppendTracker(tracker)
				go pw.Render()
				runner.OnOutcome = func(out types.Outcome) {
					tracker.Increment(1)
					if out.Status.Failed() {
						pw.Log("%s", out.Reason)
					}
				}
			} else {
				runner.OnOutcome = func(out types.Outcome) {
					if out.Status.Failed() {
						fmt.Println(out.Reason)
					}
				}
			}

			result, err := runner.Run(ctx, tickers)
			if pw != nil {
				tracker.MarkAsDone()
				pw.Stop()
			}
			if err != nil {
				return err
			}

			ropts := render.Options{Color: true}
			if w := detectTerminalWidth(); w > 0 {
				ropts.MaxColWidth = w / 2
			}
			for _, sym := range tickers {
				if s, ok := result.Summaries[sym]; ok {
					fmt.Println()
					render.Table(os.Stdout, s, ropts)
				}
			}

			fmt.Println("\nSummary:")
			fmt.Printf("%d tickers processed successfully.\n", len(result.Summaries))
			if len(result.Failed) > 0 {
				fmt.Printf("%d failed: %v\n", len(result.Failed), result.Failed)
			}

			if len(result.Summaries) > 0 {
				doExport := single
				if !single {
					form := huh.NewForm(huh.NewGroup(
						huh.NewConfirm().Title("Export to CSV?").Value(&doExport),
					))
					if err := form.Run(); err != nil {
						return err
					}
				}
				if doExport {
					for _, sym := range tickers {
						s, ok := result.Summaries[sym]
						if !ok {
							continue
						}
						path, err := report.Export(outDir, s)
						if err != nil {
							log.Error().Err(err).Str("ticker", sym).Msg("export failed")
							continue
						}
						fmt.Printf("Saved to: %s\n", path)
					}
				}
			}

			fmt.Println("Done.")
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", cfg.OutputDir, "directory for exported CSV reports")
	cmd.Flags().IntVar(&workers, "workers", cfg.Workers, "max concurrent tickers (0 = one per CPU)")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.FetchTimeout, "per-ticker fetch deadline")
	cmd.Flags().BoolVar(&withHistory, "history", false, "include the trailing 3-year close price metric")
	return cmd
}
