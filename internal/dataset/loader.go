package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fidash/internal/config"
	"fidash/pkg/contracts/domain"
)

// Loader reads the upstream pipeline outputs from disk. Every load fails
// soft: problems become warnings on the result, never errors, so a missing
// or mangled file degrades the dashboard instead of breaking it.
type Loader struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewLoader creates a loader over the configured data directories.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// dateLayouts covers the mixed date formats seen across the source files.
// Tried in order; first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"2006-01",
	"Jan 2006",
	"January 2006",
	"2006",
}

// ParseDate parses a date string tolerantly. Unparseable input returns nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseNumeric parses a numeric cell tolerantly, stripping thousands
// separators and percent signs. Unparseable input returns nil.
func ParseNumeric(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// readCSV reads a whole CSV file into a header row and data rows.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	return records[0], records[1:], nil
}

// headerIndex maps normalized column names to their positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// cell returns the named column of a row, or "" when the column is absent.
func cell(row []string, idx map[string]int, name string) string {
	if i, ok := idx[name]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// LoadUnified loads the unified observations/events table. The enriched CSV
// from the processed directory is preferred; the raw Excel workbook is the
// fallback. Impact links come from the impact_link rows of the CSV, or the
// Impact_sheet of the workbook.
func (l *Loader) LoadUnified(ctx context.Context) ([]domain.UnifiedRow, []domain.ImpactLink, []string) {
	enrichedPath := l.cfg.ProcessedPath(config.UnifiedEnrichedCSV)
	workbookPath := l.cfg.RawPath(config.UnifiedWorkbook)

	start := time.Now()

	switch {
	case config.FileExists(enrichedPath):
		rows, links, warnings := l.loadUnifiedCSV(enrichedPath)
		l.logger.InfoContext(ctx, "unified dataset loaded",
			slog.String("source", "enriched_csv"),
			slog.Int("rows", len(rows)),
			slog.Int("impact_links", len(links)),
			slog.Duration("duration", time.Since(start)))
		return rows, links, warnings

	case config.FileExists(workbookPath):
		rows, links, warnings := l.loadUnifiedWorkbook(workbookPath)
		l.logger.InfoContext(ctx, "unified dataset loaded",
			slog.String("source", "workbook"),
			slog.Int("rows", len(rows)),
			slog.Int("impact_links", len(links)),
			slog.Duration("duration", time.Since(start)))
		return rows, links, warnings

	default:
		warning := fmt.Sprintf("Unified dataset not found (looked for %s and %s).", enrichedPath, workbookPath)
		l.logger.WarnContext(ctx, "unified dataset missing",
			slog.String("enriched_path", enrichedPath),
			slog.String("workbook_path", workbookPath))
		return nil, nil, []string{warning}
	}
}

func (l *Loader) loadUnifiedCSV(path string) ([]domain.UnifiedRow, []domain.ImpactLink, []string) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, nil, []string{fmt.Sprintf("Error loading unified data: %v", err)}
	}

	idx := headerIndex(header)
	var rows []domain.UnifiedRow
	var links []domain.ImpactLink

	for _, record := range records {
		row := buildUnifiedRow(record, idx)
		if row.RecordType == domain.RecordTypeImpactLink {
			links = append(links, buildImpactLink(record, idx))
			continue
		}
		rows = append(rows, row)
	}

	return rows, links, nil
}

func (l *Loader) loadUnifiedWorkbook(path string) ([]domain.UnifiedRow, []domain.ImpactLink, []string) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, []string{fmt.Sprintf("Error loading unified data: %v", err)}
	}
	defer f.Close()

	sheetRows, err := f.GetRows(config.UnifiedSheet)
	if err != nil || len(sheetRows) == 0 {
		return nil, nil, []string{fmt.Sprintf("Error loading unified data: sheet %q not readable", config.UnifiedSheet)}
	}

	idx := headerIndex(sheetRows[0])
	var rows []domain.UnifiedRow
	for _, record := range sheetRows[1:] {
		rows = append(rows, buildUnifiedRow(record, idx))
	}

	// The impact sheet is optional in the raw workbook.
	var links []domain.ImpactLink
	if impactRows, err := f.GetRows(config.ImpactSheet); err == nil && len(impactRows) > 1 {
		impactIdx := headerIndex(impactRows[0])
		for _, record := range impactRows[1:] {
			links = append(links, buildImpactLink(record, impactIdx))
		}
	}

	return rows, links, nil
}

func buildUnifiedRow(record []string, idx map[string]int) domain.UnifiedRow {
	row := domain.UnifiedRow{
		RecordType:      domain.RecordType(strings.ToLower(cell(record, idx, "record_type"))),
		IndicatorCode:   cell(record, idx, "indicator_code"),
		Indicator:       cell(record, idx, "indicator"),
		Category:        cell(record, idx, "category"),
		ObservationDate: ParseDate(cell(record, idx, "observation_date")),
		EventDate:       ParseDate(cell(record, idx, "event_date")),
		ValueNumeric:    ParseNumeric(cell(record, idx, "value_numeric")),
	}

	if row.ObservationDate != nil {
		row.Year = row.ObservationDate.Year()
	}

	// Event date falls back to the observation date when absent.
	if row.EventDate != nil {
		row.EventDateParsed = row.EventDate
	} else {
		row.EventDateParsed = row.ObservationDate
	}

	return row
}

func buildImpactLink(record []string, idx map[string]int) domain.ImpactLink {
	event := cell(record, idx, "event")
	if event == "" {
		event = cell(record, idx, "indicator")
	}
	indicator := cell(record, idx, "indicator_code")
	if indicator == "" {
		indicator = cell(record, idx, "indicator")
	}

	link := domain.ImpactLink{
		Event:     event,
		Indicator: indicator,
	}
	if w := ParseNumeric(cell(record, idx, "weight")); w != nil {
		link.Weight = *w
	} else if v := ParseNumeric(cell(record, idx, "value_numeric")); v != nil {
		link.Weight = *v
	}
	return link
}

// LoadEventFeatures loads the time-indexed cumulative event-effect table.
// The first column is the date index. Absent file yields nil plus a warning.
func (l *Loader) LoadEventFeatures(ctx context.Context) (*domain.EventFeatures, []string) {
	path := l.cfg.ProcessedPath(config.EventFeaturesCSV)
	if !config.FileExists(path) {
		return nil, []string{"Event features not found. Run the feature engineering step first."}
	}

	header, records, err := readCSV(path)
	if err != nil {
		return nil, []string{fmt.Sprintf("Error loading event features: %v", err)}
	}
	if len(header) < 2 {
		return nil, []string{"Error loading event features: no feature columns"}
	}

	features := &domain.EventFeatures{
		Columns: append([]string(nil), header[1:]...),
		Series:  make(map[string][]float64, len(header)-1),
	}

	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		date := ParseDate(record[0])
		if date == nil {
			continue
		}
		features.Dates = append(features.Dates, *date)
		for j, col := range features.Columns {
			var v float64
			if j+1 < len(record) {
				if parsed := ParseNumeric(record[j+1]); parsed != nil {
					v = *parsed
				}
			}
			features.Series[col] = append(features.Series[col], v)
		}
	}

	l.logger.InfoContext(ctx, "event features loaded",
		slog.Int("points", features.Len()),
		slog.Int("columns", len(features.Columns)))

	return features, nil
}

// LoadEventMatrix loads the event-indicator impact matrix. The first two
// columns form the composite (event, pillar) row key.
func (l *Loader) LoadEventMatrix(ctx context.Context) (*domain.ImpactMatrix, []string) {
	path := l.cfg.ProcessedPath(config.EventMatrixCSV)
	if !config.FileExists(path) {
		return nil, []string{"Event matrix not found. Run the feature engineering step first."}
	}

	header, records, err := readCSV(path)
	if err != nil {
		return nil, []string{fmt.Sprintf("Error loading event matrix: %v", err)}
	}
	if len(header) < 3 {
		return nil, []string{"Error loading event matrix: no indicator columns"}
	}

	matrix := &domain.ImpactMatrix{
		Columns: append([]string(nil), header[2:]...),
	}

	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		matrix.Rows = append(matrix.Rows, domain.ImpactKey{
			Event:  strings.TrimSpace(record[0]),
			Pillar: strings.TrimSpace(record[1]),
		})
		cells := make([]float64, len(matrix.Columns))
		for j := range matrix.Columns {
			if j+2 < len(record) {
				if parsed := ParseNumeric(record[j+2]); parsed != nil {
					cells[j] = *parsed
				}
			}
		}
		matrix.Cells = append(matrix.Cells, cells)
	}

	nRows, nCols := matrix.Size()
	l.logger.InfoContext(ctx, "event matrix loaded",
		slog.Int("rows", nRows),
		slog.Int("columns", nCols))

	return matrix, nil
}

// LoadForecasts loads the long-form forecast table and, when present, the
// wide-form table with uncertainty bounds. The wide table is optional.
func (l *Loader) LoadForecasts(ctx context.Context) ([]domain.ForecastRow, []domain.ForecastBand, []string) {
	longPath := l.cfg.ProcessedPath(config.ForecastLongCSV)
	widePath := l.cfg.ProcessedPath(config.ForecastWideCSV)

	if !config.FileExists(longPath) {
		return nil, nil, []string{"Forecast data not found. Run the forecasting step first."}
	}

	long, err := loadForecastLong(longPath)
	if err != nil {
		return nil, nil, []string{fmt.Sprintf("Error loading forecasts: %v", err)}
	}

	var warnings []string
	var wide []domain.ForecastBand
	if config.FileExists(widePath) {
		wide, err = loadForecastWide(widePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Error loading forecast bounds: %v", err))
			wide = nil
		}
	}

	l.logger.InfoContext(ctx, "forecasts loaded",
		slog.Int("long_rows", len(long)),
		slog.Int("wide_rows", len(wide)))

	return long, wide, warnings
}

func loadForecastLong(path string) ([]domain.ForecastRow, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := headerIndex(header)
	var rows []domain.ForecastRow
	for _, record := range records {
		year, err := strconv.Atoi(cell(record, idx, "year"))
		if err != nil {
			continue
		}
		value := ParseNumeric(cell(record, idx, "forecast_value"))
		if value == nil {
			continue
		}
		rows = append(rows, domain.ForecastRow{
			IndicatorCode: cell(record, idx, "indicator_code"),
			Year:          year,
			Scenario:      domain.Scenario(strings.ToLower(cell(record, idx, "scenario"))),
			ForecastValue: *value,
		})
	}
	return rows, nil
}

func loadForecastWide(path string) ([]domain.ForecastBand, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := headerIndex(header)
	var bands []domain.ForecastBand
	for _, record := range records {
		year, err := strconv.Atoi(cell(record, idx, "year"))
		if err != nil {
			continue
		}
		lower := ParseNumeric(cell(record, idx, "lower"))
		upper := ParseNumeric(cell(record, idx, "upper"))
		if lower == nil || upper == nil {
			continue
		}
		band := domain.ForecastBand{
			IndicatorCode: cell(record, idx, "indicator_code"),
			Year:          year,
			Lower:         *lower,
			Upper:         *upper,
		}
		if base := ParseNumeric(cell(record, idx, "base")); base != nil {
			band.Base = base
		}
		bands = append(bands, band)
	}
	return bands, nil
}
