package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/modelgate/modelgate/schema"
)

// Output formats accepted by the score command.
const (
	NDJSONOut = "ndjson"
	TableOut  = "table"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// WriteRecord writes a single score record as one NDJSON line.
func WriteRecord(w io.Writer, rec *schema.FlatRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("error encoding record: %w", err)
	}
	return nil
}

// WriteReportTable renders one score report as a human-readable table.
func WriteReportTable(w io.Writer, report *schema.ScoreReport) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Score", "Latency"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range schema.AllMetrics {
		res, ok := report.Result(name)
		if !ok {
			continue
		}
		data = append(data, []string{
			string(name),
			formatScore(res.ReportedScore()),
			strconv.FormatInt(res.Latency, 10) + "ms",
		})
	}
	data = append(data, []string{
		"net_score",
		formatScore(report.NetScore),
		strconv.FormatInt(report.NetLatency, 10) + "ms",
	})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteVerdict renders a gate verdict with any failing metrics.
func WriteVerdict(w io.Writer, name string, verdict *schema.GateVerdict) error {
	if verdict.Passed {
		if _, err := fmt.Fprintf(w, "%s %s admitted\n", passColor.Sprint("PASS"), name); err != nil {
			return err
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s %s rejected\n", failColor.Sprint("FAIL"), name); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Score", "Threshold", "Gap"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, fm := range verdict.Failing {
		data = append(data, []string{
			string(fm.Metric),
			formatScore(fm.Score),
			formatScore(fm.Threshold),
			formatScore(fm.Gap),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
