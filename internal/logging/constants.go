package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldColumn     = "column"
	FieldGroup      = "account_group"
	FieldDimension  = "dimension"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldExcluded   = "excluded_rows"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldMode       = "mode"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
