package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleKPIs() models.KPISet {
	return models.KPISet{
		Revenue:     decimal.NewFromInt(1000),
		COGS:        decimal.NewFromInt(-400),
		OPEX:        decimal.NewFromInt(-200),
		GrossProfit: decimal.NewFromInt(600),
		EBIT:        decimal.NewFromInt(400),
	}
}

func TestKPIs_Text(t *testing.T) {
	var buf bytes.Buffer
	r := report.NewRenderer("CHF")

	require.NoError(t, r.KPIs(&buf, sampleKPIs(), report.FormatText))

	out := buf.String()
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "CHF 1000.00")
	assert.Contains(t, out, "60.0%")
	assert.Contains(t, out, "EBIT")
}

func TestKPIs_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := report.NewRenderer("")

	require.NoError(t, r.KPIs(&buf, sampleKPIs(), report.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "Revenue")
	assert.Contains(t, decoded, "EBIT")
}

func TestKPIs_CSV(t *testing.T) {
	var buf bytes.Buffer
	r := report.NewRenderer("")

	require.NoError(t, r.KPIs(&buf, sampleKPIs(), report.FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "metric,value", lines[0])
	assert.Len(t, lines, 6)
}

func TestKPIs_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := report.NewRenderer("").KPIs(&buf, sampleKPIs(), report.Format("yaml"))
	assert.Error(t, err)
}

func TestMonthly_CSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.MonthlyPnL{
		{Year: 2024, Month: 1, Revenue: decimal.NewFromInt(1000), GrossProfit: decimal.NewFromInt(1000), EBIT: decimal.NewFromInt(1000)},
	}

	require.NoError(t, report.NewRenderer("").Monthly(&buf, rows, report.FormatCSV))

	out := buf.String()
	assert.Contains(t, out, "year,month,revenue,cogs,opex,gross_profit,ebit")
	assert.Contains(t, out, "2024,1,1000.00")
}

func TestTopN_Text(t *testing.T) {
	var buf bytes.Buffer
	breakdown := models.TopNBreakdown{
		Dimension: models.DimName,
		Entries: []models.TopNEntry{
			{Label: "Acme", Amount: decimal.NewFromInt(600)},
		},
		Others:           decimal.NewFromInt(100),
		Total:            decimal.NewFromInt(700),
		ConcentrationPct: 100,
	}

	require.NoError(t, report.NewRenderer("").TopN(&buf, breakdown, report.FormatText))

	out := buf.String()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Others")
	assert.Contains(t, out, "Top-5 concentration")
}

func TestStatement_TextAndCSV(t *testing.T) {
	rows := []models.Transaction{
		{AccountGroup: models.GroupRevenue, SignedAmount: decimal.NewFromInt(1000), Account: "Sales"},
		{AccountGroup: models.GroupCOGS, SignedAmount: decimal.NewFromInt(-400), Account: "Materials"},
		{AccountGroup: models.GroupOPEX, SignedAmount: decimal.NewFromInt(-200), Account: "Rent"},
	}
	st := metrics.Statement(rows, models.DimAccount)

	var text bytes.Buffer
	require.NoError(t, report.NewRenderer("").Statement(&text, st, report.FormatText))
	out := text.String()
	assert.Contains(t, out, metrics.SectionTradingIncome)
	assert.Contains(t, out, "Gross Profit")
	assert.Contains(t, out, "Net Profit")
	// No other income lines, so the section stays hidden.
	assert.NotContains(t, out, metrics.SectionOtherIncome)

	var csvOut bytes.Buffer
	require.NoError(t, report.NewRenderer("").Statement(&csvOut, st, report.FormatCSV))
	assert.Contains(t, csvOut.String(), "line_item,amount")
	assert.Contains(t, csvOut.String(), "Total Operating Expenses,-200.00")
}

func TestPivot_CSV(t *testing.T) {
	var buf bytes.Buffer
	pivot := []metrics.PivotRow{{Label: "Apollo", Total: decimal.NewFromInt(100)}}
	pivot[0].Months[0] = decimal.NewFromInt(100)

	require.NoError(t, report.NewRenderer("").Pivot(&buf, pivot, report.FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "label,01,02"))
	assert.True(t, strings.HasPrefix(lines[1], "Apollo,100.00,0.00"))
	assert.True(t, strings.HasSuffix(lines[1], ",100.00"))
}
