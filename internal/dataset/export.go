package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/types"
)

const (
	StatisticsSheet   = "Statistics"
	DistributionSheet = "Distribution"
	InsightsSheet     = "Insights"
)

// WriteReport saves a report as a three-sheet workbook.
func WriteReport(path string, report types.Report, l *logger.Logger) error {
	log := logger.OrDefault(l).Component("dataset.export").WithField("path", path)
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		log.WithError(err).Error("save failed")
		return fmt.Errorf("save: %w", err)
	}
	log.WithField("groups", len(report.Distribution)).Info("report written")
	return nil
}

// BuildWorkbook lays the report out without touching disk.
func BuildWorkbook(report types.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", StatisticsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{DistributionSheet, InsightsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	st := report.Statistics
	statRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total", report.Total},
		{"Average", orBlank(st.Average)},
		{"Median", orBlank(st.Median)},
		{"Min", orBlank(st.Min)},
		{"Max", orBlank(st.Max)},
		{"With age", st.TotalWithAge},
		{"Without age", st.TotalWithoutAge},
		{"Generated at", report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00")},
	}
	if err := writeRows(f, StatisticsSheet, statRows); err != nil {
		return nil, err
	}

	distRows := [][]interface{}{{"Label", "Min", "Max", "Count", "Percentage"}}
	for _, g := range report.Distribution {
		distRows = append(distRows, []interface{}{g.Label, orBlank(g.Min), orBlank(g.Max), g.Count, g.Percentage})
	}
	if err := writeRows(f, DistributionSheet, distRows); err != nil {
		return nil, err
	}

	ins := report.Insights
	insRows := [][]interface{}{
		{"Insight", "Value"},
		{"Largest group", strOrBlank(ins.LargestGroupLabel)},
		{"Largest group count", ins.LargestGroupCount},
		{"Smallest group", strOrBlank(ins.SmallestGroupLabel)},
		{"Age specification rate %", ins.AgeSpecificationRatePercent},
		{"Dominant range", ins.DominantRangeDescription},
		{"Growth trend", ins.GrowthTrendDescription},
	}
	if err := writeRows(f, InsightsSheet, insRows); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func orBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func strOrBlank(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
