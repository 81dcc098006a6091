package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"demographics-insights-go/internal/config"
	"demographics-insights-go/internal/dataset"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/processor"
	"demographics-insights-go/internal/source"
	"demographics-insights-go/internal/types"
)

var rootCmd = &cobra.Command{
	Use:           "demographics",
	Short:         "Age demographics for a population of members",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	filePath   string
	segment    string
	nowFlag    string
	exportPath string
	asJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute age statistics, distribution and insights",
	Long: `Load people from an xlsx workbook (or the configured source), filter to a
segment and print the analytics report.

The first sheet is read; columns are detected from header names
(id, name, age, gender/sex, created/joined).`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&filePath, "file", "f", "", "people workbook (default: configured source)")
	analyzeCmd.Flags().StringVarP(&segment, "segment", "s", source.AllSegment, "gender segment to analyze")
	analyzeCmd.Flags().StringVar(&nowFlag, "now", "", "reference time for the growth window (RFC3339)")
	analyzeCmd.Flags().StringVarP(&exportPath, "export", "o", "", "write the report to this xlsx file")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if nowFlag != "" {
		t, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		now = t
	}

	// Logs go to stderr so --json output stays clean.
	cfg := config.Load()
	log := logger.NewWith(cfg.Environment, cfg.LogLevel, cmd.ErrOrStderr())

	var src source.Source
	if filePath != "" {
		src = source.NewDatasetSource(filePath, log)
	} else {
		src = source.New(cfg, log)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	res, err := processor.New(src, nil, log).ProcessSegment(ctx, segment, now)
	if err != nil {
		return err
	}

	if exportPath != "" {
		if err := dataset.WriteReport(exportPath, *res.Report, log); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printReport(out, res.Segment, *res.Report)
	return nil
}

func printReport(w io.Writer, segment string, r types.Report) {
	fmt.Fprintf(w, "Segment: %s (%d people)\n", segment, r.Total)
	fmt.Fprintln(w, strings.Repeat("─", 40))

	st := r.Statistics
	fmt.Fprintf(w, "Average age: %s  Median: %s  Range: %s-%s\n",
		intOrDash(st.Average), intOrDash(st.Median), intOrDash(st.Min), intOrDash(st.Max))
	fmt.Fprintf(w, "With age: %d  Without age: %d\n\n", st.TotalWithAge, st.TotalWithoutAge)

	for _, g := range r.Distribution {
		fmt.Fprintf(w, "%-14s %4d  %3d%%\n", g.Label, g.Count, g.Percentage)
	}

	ins := r.Insights
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", ins.DominantRangeDescription)
	fmt.Fprintf(w, "Age specified by %d%%\n", ins.AgeSpecificationRatePercent)
	fmt.Fprintf(w, "%s\n", ins.GrowthTrendDescription)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
