// Package loader builds the canonical transaction and budget tables from
// loosely-structured source tables. Structural problems abort the load;
// per-row problems (bad dates, unclassifiable rows, non-numeric amounts) are
// absorbed by exclusion or defaulting and never interrupt the overall load.
package loader

import (
	"sort"
	"time"

	"finsight/pnl-csv/internal/classifier"
	"finsight/pnl-csv/internal/dateutils"
	"finsight/pnl-csv/internal/loaderror"
	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"
	"finsight/pnl-csv/internal/table"

	"github.com/shopspring/decimal"
)

// Column spelling variants accepted for the descriptive dimensions.
var dimensionVariants = map[string][]string{
	models.DimAccount: {"ACCOUNT", "Account"},
	models.DimProject: {"PROJECT", "Project"},
	models.DimName:    {"NAME", "Name"},
}

// Loader turns raw tables into canonical datasets.
type Loader struct {
	classifier *classifier.Classifier
	logger     logging.Logger
}

// New creates a Loader around the given classifier.
func New(c *classifier.Classifier, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Loader{classifier: c, logger: logger}
}

// Load validates and classifies a transaction table and an optional budget
// table into an immutable canonical dataset. A nil budget table yields an
// empty canonical budget with the schema intact; budget-dependent metrics
// treat that as "no budget data", never as an error.
func (l *Loader) Load(tx, budget *table.Table) (*models.Dataset, error) {
	if err := checkTransactionSchema(tx); err != nil {
		return nil, err
	}

	ds := &models.Dataset{}
	ds.Dimensions = presentDimensions(tx)

	for i := range tx.Rows {
		row, ok := l.buildTransaction(tx, i)
		if !ok {
			ds.ExcludedRows++
			continue
		}
		ds.Transactions = append(ds.Transactions, row)
	}

	if budget != nil {
		ds.Budget, ds.BudgetHasMonths = l.buildBudget(budget)
	}

	l.logger.Info("Built canonical dataset",
		logging.Field{Key: logging.FieldCount, Value: len(ds.Transactions)},
		logging.Field{Key: logging.FieldExcluded, Value: ds.ExcludedRows})
	return ds, nil
}

// checkTransactionSchema enforces the three structurally required columns.
func checkTransactionSchema(tx *table.Table) error {
	var missing []string
	for _, col := range []string{models.ColDate, models.ColAmount, models.ColSide} {
		if !tx.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &loaderror.SchemaError{Source: "transactions", Missing: missing}
	}
	return nil
}

// buildTransaction classifies one raw row. ok is false when the row does not
// belong to the P&L: either its side/class combination maps to no group, or
// its amount is not numeric.
func (l *Loader) buildTransaction(tx *table.Table, i int) (models.Transaction, bool) {
	side := tx.Cell(i, models.ColSide)
	shortClass := tx.Cell(i, models.ColShortClass)
	classText := tx.Cell(i, models.ColClass)

	group := l.classifier.Classify(side, shortClass, classText)
	if group == models.GroupNone {
		return models.Transaction{}, false
	}

	amount, ok := models.ParseAmount(tx.Cell(i, models.ColAmount))
	if !ok {
		l.logger.Debug("Dropping row with non-numeric amount",
			logging.Field{Key: logging.FieldReason, Value: tx.Cell(i, models.ColAmount)})
		return models.Transaction{}, false
	}
	signed, ok := classifier.SignedAmount(amount, group)
	if !ok {
		return models.Transaction{}, false
	}

	// Unparseable dates leave the period fields null rather than dropping
	// the row: only a missing signed amount excludes.
	var date time.Time
	if parsed, err := dateutils.ParseDateString(tx.Cell(i, models.ColDate)); err == nil {
		date = parsed
	}
	year, month := dateutils.YearMonth(date)

	return models.Transaction{
		Date:         date,
		Year:         year,
		Month:        month,
		Amount:       amount.Abs(),
		SignedAmount: signed,
		Side:         side,
		ShortClass:   shortClass,
		Class:        classText,
		AccountGroup: group,
		Account:      dimensionCell(tx, i, models.DimAccount),
		Name:         dimensionCell(tx, i, models.DimName),
		Project:      dimensionCell(tx, i, models.DimProject),
	}, true
}

// buildBudget classifies raw budget rows with the same rules as transactions
// and pre-aggregates them by (year[, month], account group). Raw budget line
// items are not retained individually.
func (l *Loader) buildBudget(budget *table.Table) ([]models.BudgetRow, bool) {
	hasMonths := budget.HasColumn(models.ColCanonMonth) || budget.HasColumn("MONTH")

	type key struct {
		year, month int
		group       models.AccountGroup
	}
	sums := make(map[key]decimal.Decimal)

	for i := range budget.Rows {
		group := l.classifier.Classify(
			budget.Cell(i, models.ColSide),
			budget.Cell(i, models.ColShortClass),
			budget.Cell(i, models.ColClass),
		)
		if group == models.GroupNone {
			continue
		}

		year := budgetYear(budget, i)
		if year == 0 {
			continue
		}
		month := 0
		if hasMonths {
			month = intCell(budget, i, models.ColCanonMonth, "MONTH")
		}

		amount := budgetAmount(budget, i)
		k := key{year: year, month: month, group: group}
		sums[k] = sums[k].Add(amount)
	}

	rows := make([]models.BudgetRow, 0, len(sums))
	for k, total := range sums {
		rows = append(rows, models.BudgetRow{
			Year:         k.year,
			Month:        k.month,
			AccountGroup: k.group,
			BudgetAmount: total,
		})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Year != rows[b].Year {
			return rows[a].Year < rows[b].Year
		}
		if rows[a].Month != rows[b].Month {
			return rows[a].Month < rows[b].Month
		}
		return rows[a].AccountGroup < rows[b].AccountGroup
	})
	return rows, hasMonths
}

// budgetYear resolves the budget year from an explicit year column when
// present, else from a date column.
func budgetYear(budget *table.Table, i int) int {
	if budget.HasColumn(models.ColCanonYear) {
		if y := parseInt(budget.Cell(i, models.ColCanonYear)); y != 0 {
			return y
		}
	}
	for _, col := range []string{models.ColDateUpper, models.ColDate, models.ColCanonDate} {
		if !budget.HasColumn(col) {
			continue
		}
		if date, err := dateutils.ParseDateString(budget.Cell(i, col)); err == nil {
			return date.Year()
		}
	}
	return 0
}

// budgetAmount reads the planned figure from BUDGET or budget_amount,
// defaulting to zero when neither parses.
func budgetAmount(budget *table.Table, i int) decimal.Decimal {
	for _, col := range []string{models.ColBudget, models.ColBudgetAmount} {
		if !budget.HasColumn(col) {
			continue
		}
		if amount, ok := models.ParseAmount(budget.Cell(i, col)); ok {
			return amount
		}
	}
	return decimal.Zero
}

func dimensionCell(t *table.Table, i int, dim string) string {
	for _, variant := range dimensionVariants[dim] {
		if t.HasColumn(variant) {
			return t.Cell(i, variant)
		}
	}
	return ""
}

// presentDimensions probes which descriptive dimension columns the source
// carries, reported in canonical spelling.
func presentDimensions(t *table.Table) []string {
	var dims []string
	for _, dim := range []string{models.DimAccount, models.DimName, models.DimProject} {
		for _, variant := range dimensionVariants[dim] {
			if t.HasColumn(variant) {
				dims = append(dims, dim)
				break
			}
		}
	}
	return dims
}

func intCell(t *table.Table, i int, cols ...string) int {
	for _, col := range cols {
		if t.HasColumn(col) {
			if v := parseInt(t.Cell(i, col)); v != 0 {
				return v
			}
		}
	}
	return 0
}

func parseInt(s string) int {
	d, ok := models.ParseAmount(s)
	if !ok {
		return 0
	}
	return int(d.IntPart())
}
