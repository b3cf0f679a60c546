package config

// Input file names produced by the upstream pipeline.
const (
	UnifiedEnrichedCSV = "ethiopia_fi_unified_data_enriched.csv"
	UnifiedWorkbook    = "ethiopia_fi_unified_data.xlsx"
	UnifiedSheet       = "ethiopia_fi_unified_data"
	ImpactSheet        = "Impact_sheet"
	EventFeaturesCSV   = "event_features.csv"
	EventMatrixCSV     = "event_indicator_matrix.csv"
	ForecastLongCSV    = "forecast_2025_2027.csv"
	ForecastWideCSV    = "forecast_2025_2027_wide.csv"
)

// ExportFileName is the download name for the forecast CSV export.
const ExportFileName = "ethiopia_fi_forecast_2025_2027.csv"

// Headline indicator codes used by the Overview and Forecasts pages.
const (
	IndicatorAccountOwnership = "ACC_OWNERSHIP"
	IndicatorMobileMoney      = "ACC_MM_ACCOUNT"
	IndicatorDigitalPayment   = "USG_DIGITAL_PAYMENT"
)

// AccessTargetPercent is the NFIS-II account ownership target the 2027
// forecast is measured against.
const AccessTargetPercent = 60.0

// ForecastTargetYear is the horizon year of the upstream forecasts.
const ForecastTargetYear = 2027
