package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"demographics-insights-go/internal/dataset"
	"demographics-insights-go/internal/processor"
)

func writePeople(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"id", "name", "gender", "age", "created_at"},
		{"1", "Ana", "female", 25, "2025-06-10T00:00:00Z"},
		{"2", "Ben", "male", 30, ""},
		{"3", "Cai", "female", 45, ""},
		{"4", "Dee", "female", "", ""},
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", addr, &row))
	}
	path := filepath.Join(t.TempDir(), "people.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// reset flag state between runs
	filePath, segment, nowFlag, exportPath, asJSON = "", "all", "", "", false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeText(t *testing.T) {
	path := writePeople(t)
	out, err := run(t, "analyze", "--file", path, "--now", "2025-06-15T00:00:00Z")
	require.NoError(t, err)

	assert.Contains(t, out, "Segment: all (4 people)")
	assert.Contains(t, out, "Average age: 33  Median: 30  Range: 25-45")
	assert.Contains(t, out, "Largest group: 25-34")
	assert.Contains(t, out, "Age specified by 75%")
	assert.Contains(t, out, "25% joined in last 30 days - Moderate growth")
}

func TestAnalyzeJSONAndExport(t *testing.T) {
	path := writePeople(t)
	export := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := run(t, "analyze", "-f", path, "-s", "female", "--now", "2025-06-15T00:00:00Z", "--json", "-o", export)
	require.NoError(t, err)

	var res processor.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "female", res.Segment)
	assert.Equal(t, 3, res.Report.Total)

	f, err := excelize.OpenFile(export)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), dataset.InsightsSheet)
}

func TestAnalyzeBadNow(t *testing.T) {
	_, err := run(t, "analyze", "--file", writePeople(t), "--now", "soon")
	assert.Error(t, err)
}
