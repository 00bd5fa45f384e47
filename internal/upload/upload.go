// Package upload prepares externally supplied tables for merging into the
// working dataset: it fills in derivable columns, projects uploads onto the
// known schema and combines them with the existing data.
package upload

import (
	"strconv"
	"strings"

	"finsight/pnl-csv/internal/classifier"
	"finsight/pnl-csv/internal/dateutils"
	"finsight/pnl-csv/internal/loaderror"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/table"
)

// Mode selects how an upload combines with the existing dataset.
type Mode string

const (
	// ModeAppend keeps existing rows and adds the upload after them.
	ModeAppend Mode = "append"
	// ModeReplace discards the existing rows entirely.
	ModeReplace Mode = "replace"
)

// Header spellings accepted for the transaction date on uploads.
var dateColumns = []string{models.ColCanonDate, models.ColDate, models.ColDateUpper}

// Renames applied to budget uploads before normalization, mirroring the
// loose header conventions of exported budget sheets.
var budgetRenames = map[string]string{
	"amount":       models.ColBudgetAmount,
	"Budget":       models.ColBudgetAmount,
	models.ColDate: models.ColCanonDate,
}

// Normalize fills in the derivable canonical columns on an uploaded table
// and projects it onto the template schema. Columns outside the template
// are dropped; the drop is intentional (the merged table must stay
// rectangular) and logged at debug level so the loss stays visible. An
// empty template keeps every column, which is the first-upload case where
// the upload defines the schema.
func Normalize(uploaded *table.Table, template []string, logger logging.Logger) *table.Table {
	if logger == nil {
		logger = logging.GetLogger()
	}
	work := uploaded.Clone()

	derivePeriod(work)
	deriveSignedAmount(work)

	if len(template) == 0 {
		return work
	}
	common := work.IntersectColumns(template)
	if dropped := difference(work.Headers, common); len(dropped) > 0 {
		logger.Debug("Dropping upload columns outside the known schema",
			logging.Field{Key: logging.FieldColumn, Value: strings.Join(dropped, ", ")})
	}
	return work.Select(common)
}

// NormalizeBudget applies the budget header rename guesses and then the
// regular normalization.
func NormalizeBudget(uploaded *table.Table, template []string, logger logging.Logger) *table.Table {
	work := uploaded.Clone()
	for from, to := range budgetRenames {
		work.RenameColumn(from, to)
	}
	return Normalize(work, template, logger)
}

// Merge combines the existing table with an upload. Replace returns the
// upload alone; Append keeps the existing schema and concatenates the
// upload rows after the existing ones, aligned column by column. Upload
// columns the existing table lacks are dropped, existing columns the
// upload lacks are padded with "". Appending with no shared columns is
// refused: none of the upload's values would survive.
func Merge(existing, incoming *table.Table, mode Mode) (*table.Table, error) {
	switch mode {
	case ModeReplace:
		return incoming.Clone(), nil
	case ModeAppend:
		if len(existing.IntersectColumns(incoming.Headers)) == 0 {
			return nil, &loaderror.MergeError{Mode: string(mode), Reason: "no columns in common"}
		}
		merged := existing.Clone()
		for i := range incoming.Rows {
			row := make([]string, len(merged.Headers))
			for j, col := range merged.Headers {
				row[j] = incoming.Cell(i, col)
			}
			merged.Rows = append(merged.Rows, row)
		}
		return merged, nil
	default:
		return nil, &loaderror.MergeError{Mode: string(mode), Reason: "unknown merge mode"}
	}
}

// derivePeriod adds year and month columns from a date column when the
// upload has one but lacks the period columns.
func derivePeriod(t *table.Table) {
	var dateCol string
	for _, col := range dateColumns {
		if t.HasColumn(col) {
			dateCol = col
			break
		}
	}
	if dateCol == "" {
		return
	}
	if t.HasColumn(models.ColCanonYear) && t.HasColumn(models.ColCanonMonth) {
		return
	}

	t.AddColumn(models.ColCanonYear, "")
	t.AddColumn(models.ColCanonMonth, "")
	for i := range t.Rows {
		date, err := dateutils.ParseDateString(t.Cell(i, dateCol))
		if err != nil {
			continue
		}
		t.SetCell(i, models.ColCanonYear, strconv.Itoa(date.Year()))
		t.SetCell(i, models.ColCanonMonth, strconv.Itoa(int(date.Month())))
	}
}

// deriveSignedAmount fills the signed_amount column from AMOUNT. When the
// upload carries an account_group column the sign comes from the group;
// otherwise AMOUNT is taken as already signed.
func deriveSignedAmount(t *table.Table) {
	if t.HasColumn(models.ColCanonSigned) || !t.HasColumn(models.ColAmount) {
		return
	}

	hasGroup := t.HasColumn(models.ColCanonGroup)
	t.AddColumn(models.ColCanonSigned, "")
	for i := range t.Rows {
		amount, ok := models.ParseAmount(t.Cell(i, models.ColAmount))
		if !ok {
			continue
		}
		signed := amount
		if hasGroup {
			group := models.AccountGroup(strings.TrimSpace(t.Cell(i, models.ColCanonGroup)))
			if s, valid := classifier.SignedAmount(amount, group); valid {
				signed = s
			}
		}
		t.SetCell(i, models.ColCanonSigned, signed.String())
	}
}

func difference(all, keep []string) []string {
	keepSet := make(map[string]bool, len(keep))
	for _, h := range keep {
		keepSet[h] = true
	}
	var out []string
	for _, h := range all {
		if !keepSet[h] {
			out = append(out, h)
		}
	}
	return out
}
