// Package constants provides shared constants for the debt-plan application.
package constants

// DateTimeLayout is the calendar-month granularity used for payoff dates
// and is also the output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MinimumPrincipalShare is the fraction of the principal every
	// normalized loan payment must cover on top of interest so the
	// simulator always makes forward progress.
	MinimumPrincipalShare = 0.01
)

// Safety bounds on iterative calculations
const (
	// MaxCardPayoffMonths caps the revolving-credit payoff iteration (100 years).
	MaxCardPayoffMonths = 1200

	// MaxSimulationMonths caps the repayment simulation (300 years).
	MaxSimulationMonths = 3600

	// CustomPaymentTermFactor bounds a custom-payment amortization at a
	// multiple of the nominal term before the loan is declared non-amortizing.
	CustomPaymentTermFactor = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server constants
const (
	// DefaultServerAddress is the default HTTP listen address for the plan API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// VariableRateSpread is the fixed spread in percentage points added to a
// loan's nominal rate when its interest type is variable.
const VariableRateSpread = 1.0
