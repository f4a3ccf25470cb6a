// Command graphisizer is the WCA results CLI.
//
// Usage:
//
//	graphisizer search zemdegs
//	graphisizer series 2009ZEMD01 --event 333 --type single
//	graphisizer compare 2009ZEMD01:333:single 2012PARK03:333:single
//	graphisizer chart 2009ZEMD01:333:average --out progress.png
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/format"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/series"
	"github.com/roowus/graphisizer/internal/stats"
	"github.com/roowus/graphisizer/internal/wca"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "graphisizer",
		Short: "WCA competition results on the command line",
	}

	root.AddCommand(searchCmd())
	root.AddCommand(seriesCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(chartCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// run wires up config and the upstream client around a command body.
func run(fn func(ctx context.Context, cfg *config.Config, client *wca.Client) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg, wca.NewClient(cfg, logger))
}

// --------------------------------------------------------------------------
// search command
// --------------------------------------------------------------------------

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search competitors by name or WCA ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *wca.Client) error {
				candidates, err := client.Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, c := range candidates {
					fmt.Fprintf(w, "%s\t%s\n", c.WCAID, c.Name)
				}
				return w.Flush()
			})
		},
	}
}

// --------------------------------------------------------------------------
// series command
// --------------------------------------------------------------------------

func seriesCmd() *cobra.Command {
	var event, resultType string
	cmd := &cobra.Command{
		Use:   "series WCA_ID",
		Short: "Print a competitor's result series with statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *wca.Client) error {
				spec, err := series.ParseSpec(args[0] + ":" + event + ":" + resultType)
				if err != nil {
					return err
				}
				s, err := client.LoadSeries(ctx, spec)
				if err != nil {
					return err
				}

				fmt.Printf("%s — %s %s (%s)\n\n", s.PersonName, s.Event, s.ResultType, s.WCAID)
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, p := range s.Points {
					display := "DNF"
					if !p.IsDNF {
						display = format.Value(p.Value, s.Event, s.ResultType)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						p.Date.Format("2006-01-02"), p.CompetitionName, p.Round, display)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				if d, ok := stats.Describe(s.ValidValues()); ok {
					fmt.Printf("\nbest %s  worst %s  mean %s  median %s  stddev %.2f  cv %.1f%%\n",
						format.Value(d.Best, s.Event, s.ResultType),
						format.Value(d.Worst, s.Event, s.ResultType),
						format.Value(d.Mean, s.Event, s.ResultType),
						format.Value(d.Median, s.Event, s.ResultType),
						d.StdDev, d.CV)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&event, "event", "333", "Event ID")
	cmd.Flags().StringVar(&resultType, "type", "single", "Result type (single, average, rank, wr, cr, nr, solves, worst)")
	return cmd
}

// --------------------------------------------------------------------------
// compare command
// --------------------------------------------------------------------------

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare SPEC...",
		Short: "Head-to-head and correlation statistics for two or more selections",
		Long:  "Each SPEC is id:event:resultType, e.g. 2009ZEMD01:333:single.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *wca.Client) error {
				manager, err := loadGraphs(client, args)
				if err != nil {
					return err
				}

				bundle := manager.Stats()
				if bundle.Compatibility.Incompatible {
					fmt.Printf("note: selections mix unit families %v\n\n", bundle.Compatibility.Families)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "competitor\tmean\tbest\timprovement")
				for _, ss := range bundle.Series {
					g, _ := manager.Get(ss.GraphID)
					mean, best, rate := "-", "-", "-"
					if ss.Descriptive != nil {
						mean = format.Value(ss.Descriptive.Mean, g.Spec.Event, g.Spec.ResultType)
						best = format.Value(ss.Descriptive.Best, g.Spec.Event, g.Spec.ResultType)
					}
					if ss.ImprovementRate != nil {
						rate = fmt.Sprintf("%.0f%%", *ss.ImprovementRate*100)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ss.PersonName, mean, best, rate)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				if h := bundle.HeadToHead; h != nil {
					fmt.Printf("\nhead-to-head over %d shared competition days:\n", h.Meetings)
					for _, st := range h.Standings {
						fmt.Printf("  %s: %d wins, avg position %.2f\n", st.PersonName, st.Wins, st.AvgPosition)
					}
				}
				for _, pc := range bundle.Correlations {
					if pc.Coefficient != nil {
						fmt.Printf("\ncorrelation %s / %s over %d paired days: %.3f\n",
							pc.A, pc.B, pc.Pairs, *pc.Coefficient)
					}
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// chart command
// --------------------------------------------------------------------------

func chartCmd() *cobra.Command {
	var out, view string
	cmd := &cobra.Command{
		Use:   "chart SPEC...",
		Short: "Render selections to a PNG chart",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, client *wca.Client) error {
				manager, err := loadGraphs(client, args)
				if err != nil {
					return err
				}
				mode := graph.ViewMode(view)
				if err := manager.CheckView(mode); err != nil {
					return err
				}

				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := renderChart(manager, mode, f); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "graph.png", "Output PNG file")
	cmd.Flags().StringVar(&view, "view", "raw", "View mode (raw, unit, percent)")
	return cmd
}

// loadGraphs registers every spec on a fresh manager and waits for the
// fetches to settle, failing if any selection could not load.
func loadGraphs(client *wca.Client, rawSpecs []string) (*graph.Manager, error) {
	manager := graph.NewManager(client, logger)
	for _, raw := range rawSpecs {
		spec, err := series.ParseSpec(raw)
		if err != nil {
			return nil, err
		}
		if _, err := manager.Add(spec); err != nil {
			return nil, err
		}
	}
	manager.Wait()

	for _, g := range manager.List() {
		if g.Status == graph.StatusError {
			return nil, fmt.Errorf("%s: %s", g.Spec.Encode(), g.Error)
		}
	}
	return manager, nil
}
