// Package constants provides shared constants for the mortgage calculator.
package constants

// DateLayout is the format expected in config files and API payloads and is
// also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of monthly periods in a year
	MonthsPerYear = 12

	// BiWeeklyPeriodsPerYear is the number of bi-weekly periods in a year
	BiWeeklyPeriodsPerYear = 26

	// BiWeeklyPeriodDays is the spacing between bi-weekly payment dates
	BiWeeklyPeriodDays = 14

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places shown for currency
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PMIRemovalLTV is the loan-to-value ratio at or below which mortgage
	// insurance is automatically terminated.
	PMIRemovalLTV = 0.78

	// DefaultOriginationLTV is assumed when no home value is supplied, i.e. the
	// home value is estimated as loanAmount / DefaultOriginationLTV.
	DefaultOriginationLTV = 0.8
)

// Payment frequency constants
const (
	// FrequencyMonthly schedules one payment per calendar month
	FrequencyMonthly = "monthly"

	// FrequencyBiWeekly schedules a half payment every 14 days
	FrequencyBiWeekly = "biweekly"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultPDFOutputFile is used when PDF output is requested without a path
	DefaultPDFOutputFile = "amortization_schedule.pdf"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultScenarioFile is where saved scenarios are persisted by default
	DefaultScenarioFile = "scenarios.yaml"
)

// Scenario store constants
const (
	// MaxSavedScenarios is the number of scenarios kept before the least
	// recently updated one is evicted.
	MaxSavedScenarios = 10
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
