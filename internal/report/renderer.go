// Package report renders aggregation results for the terminal and for file
// export. Every view is available as an aligned text table, indented JSON
// or CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"finsight/pnl-csv/internal/metrics"
	"finsight/pnl-csv/internal/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Renderer writes aggregation results in the configured format. The
// currency string, when set, prefixes every money figure in text output.
type Renderer struct {
	currency string
}

// NewRenderer creates a renderer. currency may be empty.
func NewRenderer(currency string) *Renderer {
	return &Renderer{currency: currency}
}

// KPIs renders a headline KPI set.
func (r *Renderer) KPIs(w io.Writer, k models.KPISet, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, k)
	case FormatCSV:
		rows := []kpiRow{
			{Metric: "Revenue", Value: k.Revenue.StringFixed(2)},
			{Metric: "COGS", Value: k.COGS.StringFixed(2)},
			{Metric: "Gross Profit", Value: k.GrossProfit.StringFixed(2)},
			{Metric: "OPEX", Value: k.OPEX.StringFixed(2)},
			{Metric: "EBIT", Value: k.EBIT.StringFixed(2)},
		}
		return gocsv.Marshal(rows, w)
	case FormatText:
		tw := newTabWriter(w)
		fmt.Fprintf(tw, "Revenue\t%s\n", r.money(k.Revenue))
		fmt.Fprintf(tw, "COGS\t%s\n", r.money(k.COGS))
		fmt.Fprintf(tw, "Gross Profit\t%s\t(%.1f%%)\n", r.money(k.GrossProfit), metrics.MarginPct(k.GrossProfit, k.Revenue))
		fmt.Fprintf(tw, "OPEX\t%s\n", r.money(k.OPEX))
		fmt.Fprintf(tw, "EBIT\t%s\t(%.1f%%)\n", r.money(k.EBIT), metrics.MarginPct(k.EBIT, k.Revenue))
		return tw.Flush()
	default:
		return unsupported(format)
	}
}

// Monthly renders the month-by-month P&L pivot.
func (r *Renderer) Monthly(w io.Writer, rows []models.MonthlyPnL, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		out := make([]monthlyRow, len(rows))
		for i, m := range rows {
			out[i] = monthlyRow{
				Year:        m.Year,
				Month:       m.Month,
				Revenue:     m.Revenue.StringFixed(2),
				COGS:        m.COGS.StringFixed(2),
				OPEX:        m.OPEX.StringFixed(2),
				GrossProfit: m.GrossProfit.StringFixed(2),
				EBIT:        m.EBIT.StringFixed(2),
			}
		}
		return gocsv.Marshal(out, w)
	case FormatText:
		tw := newTabWriter(w)
		fmt.Fprintln(tw, "Year\tMonth\tRevenue\tCOGS\tGross Profit\tOPEX\tEBIT")
		for _, m := range rows {
			fmt.Fprintf(tw, "%d\t%02d\t%s\t%s\t%s\t%s\t%s\n",
				m.Year, m.Month, r.money(m.Revenue), r.money(m.COGS),
				r.money(m.GrossProfit), r.money(m.OPEX), r.money(m.EBIT))
		}
		return tw.Flush()
	default:
		return unsupported(format)
	}
}

// TopN renders a ranked dimension breakdown.
func (r *Renderer) TopN(w io.Writer, b models.TopNBreakdown, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, b)
	case FormatCSV:
		out := make([]topNRow, 0, len(b.Entries)+2)
		for _, e := range b.Entries {
			out = append(out, topNRow{Label: e.Label, Amount: e.Amount.StringFixed(2)})
		}
		if !b.Others.IsZero() {
			out = append(out, topNRow{Label: "Others", Amount: b.Others.StringFixed(2)})
		}
		out = append(out, topNRow{Label: "Total", Amount: b.Total.StringFixed(2)})
		return gocsv.Marshal(out, w)
	case FormatText:
		tw := newTabWriter(w)
		fmt.Fprintf(tw, "%s\tAmount\n", b.Dimension)
		for _, e := range b.Entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Label, r.money(e.Amount))
		}
		if !b.Others.IsZero() {
			fmt.Fprintf(tw, "Others\t%s\n", r.money(b.Others))
		}
		fmt.Fprintf(tw, "Total\t%s\n", r.money(b.Total))
		fmt.Fprintf(tw, "Top-5 concentration\t%.1f%%\n", b.ConcentrationPct)
		return tw.Flush()
	default:
		return unsupported(format)
	}
}

// Statement renders the structured P&L statement. The CSV form mirrors the
// text layout: section header rows, one line per item, subtotal rows and a
// blank spacer between sections.
func (r *Renderer) Statement(w io.Writer, st models.PLStatement, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, st)
	case FormatCSV:
		var out []statementRow
		appendSection := func(s models.PLSection) {
			out = append(out, statementRow{Line: s.Title})
			for _, line := range s.Lines {
				out = append(out, statementRow{Line: "  " + line.Label, Amount: line.Amount.StringFixed(2)})
			}
			out = append(out, statementRow{Line: "Total " + s.Title, Amount: s.Subtotal.StringFixed(2)})
			out = append(out, statementRow{})
		}
		appendSection(st.Revenue)
		appendSection(st.CostOfSales)
		out = append(out, statementRow{Line: "Gross Profit", Amount: st.GrossProfit.StringFixed(2)})
		out = append(out, statementRow{})
		if len(st.OtherIncome.Lines) > 0 {
			appendSection(st.OtherIncome)
		}
		appendSection(st.Expenses)
		out = append(out, statementRow{Line: "Net Profit", Amount: st.NetProfit.StringFixed(2)})
		return gocsv.Marshal(out, w)
	case FormatText:
		tw := newTabWriter(w)
		r.textSection(tw, st.Revenue)
		r.textSection(tw, st.CostOfSales)
		fmt.Fprintf(tw, "Gross Profit\t%s\n\n", r.money(st.GrossProfit))
		if len(st.OtherIncome.Lines) > 0 {
			r.textSection(tw, st.OtherIncome)
		}
		r.textSection(tw, st.Expenses)
		fmt.Fprintf(tw, "Net Profit\t%s\n", r.money(st.NetProfit))
		return tw.Flush()
	default:
		return unsupported(format)
	}
}

// Pivot renders a dimension × month pivot for one year.
func (r *Renderer) Pivot(w io.Writer, rows []metrics.PivotRow, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		// The pivot has a variable column set, so it bypasses the
		// struct-tagged CSV path.
		cw := csv.NewWriter(w)
		header := append([]string{"label"}, monthHeaders()...)
		if err := cw.Write(append(header, "total")); err != nil {
			return err
		}
		for _, row := range rows {
			record := make([]string, 0, 14)
			record = append(record, row.Label)
			for _, v := range row.Months {
				record = append(record, v.StringFixed(2))
			}
			record = append(record, row.Total.StringFixed(2))
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatText:
		tw := newTabWriter(w)
		fmt.Fprint(tw, "Label")
		for m := 1; m <= 12; m++ {
			fmt.Fprintf(tw, "\t%02d", m)
		}
		fmt.Fprintln(tw, "\tTotal")
		for _, row := range rows {
			fmt.Fprint(tw, row.Label)
			for _, v := range row.Months {
				fmt.Fprintf(tw, "\t%s", v.StringFixed(2))
			}
			fmt.Fprintf(tw, "\t%s\n", row.Total.StringFixed(2))
		}
		return tw.Flush()
	default:
		return unsupported(format)
	}
}

func (r *Renderer) textSection(w io.Writer, s models.PLSection) {
	fmt.Fprintf(w, "%s\n", s.Title)
	for _, line := range s.Lines {
		fmt.Fprintf(w, "  %s\t%s\n", line.Label, r.money(line.Amount))
	}
	fmt.Fprintf(w, "Total %s\t%s\n\n", s.Title, r.money(s.Subtotal))
}

func (r *Renderer) money(v decimal.Decimal) string {
	if r.currency == "" {
		return v.StringFixed(2)
	}
	return r.currency + " " + v.StringFixed(2)
}

func monthHeaders() []string {
	out := make([]string, 12)
	for m := 1; m <= 12; m++ {
		out[m-1] = fmt.Sprintf("%02d", m)
	}
	return out
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func unsupported(format Format) error {
	return fmt.Errorf("unsupported report format: %s", format)
}

type kpiRow struct {
	Metric string `csv:"metric"`
	Value  string `csv:"value"`
}

type monthlyRow struct {
	Year        int    `csv:"year"`
	Month       int    `csv:"month"`
	Revenue     string `csv:"revenue"`
	COGS        string `csv:"cogs"`
	OPEX        string `csv:"opex"`
	GrossProfit string `csv:"gross_profit"`
	EBIT        string `csv:"ebit"`
}

type topNRow struct {
	Label  string `csv:"label"`
	Amount string `csv:"amount"`
}

type statementRow struct {
	Line   string `csv:"line_item"`
	Amount string `csv:"amount"`
}
