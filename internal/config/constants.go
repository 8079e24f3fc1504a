package config

// Application constants
const (
	AppName = "livingwage"

	// File Paths (relative to the base directory)
	DefaultDataDir     = "DataFiles"
	DefaultReportsDir  = "reports"
	DefaultLogsDir     = "logs"
	DefaultLogFile     = "livingwage.log"
	DefaultTraceFile   = "livingwage-traces.json"
	DefaultWagesFile   = "wages.csv"
	DefaultSunriseFile = "sunRiseSet.csv"

	// Report defaults
	DefaultColumnWidth = 15
	DefaultTopN        = 5
	DefaultChartTop    = 10

	// Chart formats
	ChartFormatHTML = "html"
	ChartFormatXLSX = "xlsx"
	ChartFormatNone = "none"

	// Trace exporters
	TraceExporterFile   = "file"
	TraceExporterStderr = "stderr"
	TraceExporterNone   = "none"

	// Export file names
	ChartHTMLFile   = "wage_gap_chart.html"
	ChartXLSXFile   = "wage_gap_chart.xlsx"
	MetricsTextfile = "livingwage.prom"
)
