package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fidash/internal/config"
	"fidash/internal/dataset"
	"fidash/internal/exporter"
	"fidash/internal/infrastructure"
	"fidash/pkg/contracts/domain"
)

// Chart colors. Historical data is always blue; scenarios keep fixed
// colors so they read consistently across pages.
const historicalColor = "#1f77b4"

var scenarioColors = map[domain.Scenario]string{
	domain.ScenarioBase:        "#ff7f0e",
	domain.ScenarioOptimistic:  "#2ca02c",
	domain.ScenarioPessimistic: "#d62728",
}

// Filters carries the request-level page filters. Zero values mean
// "not set" and fall back to page defaults.
type Filters struct {
	FromYear   int
	ToYear     int
	Scenario   domain.Scenario
	Indicators []string // Trends multi-select
	Categories []string // Events multi-select
	Indicator  string   // Forecasts single-select
}

func (f Filters) scenario() domain.Scenario {
	if f.Scenario == "" {
		return domain.ScenarioBase
	}
	return f.Scenario
}

// DashboardService renders the five dashboard pages. Every page is a pure
// function of the dataset snapshot and the request filters; degraded
// datasets produce placeholders plus the snapshot warnings, never errors.
type DashboardService struct {
	store   *dataset.Store
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
}

// NewDashboardService creates the page rendering service. Metrics may be
// nil.
func NewDashboardService(store *dataset.Store, logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *DashboardService {
	return &DashboardService{
		store:   store,
		logger:  logger.With(slog.String("component", "dashboard_service")),
		metrics: metrics,
	}
}

func (s *DashboardService) observe(ctx context.Context, page string, start time.Time) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("page", page))
	s.metrics.PageRendersTotal.Add(ctx, 1, attrs)
	s.metrics.PageRenderDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// Overview renders the landing page: headline KPIs, insight panels and the
// combined historical + forecast chart for account ownership.
func (s *DashboardService) Overview(ctx context.Context, f Filters) *OverviewPage {
	defer s.observe(ctx, "overview", time.Now())

	snap := s.store.Snapshot(ctx)
	obs := dataset.FilterYearRange(dataset.Observations(snap.Unified), f.FromYear, f.ToYear)
	events := dataset.Events(snap.Unified)
	scenario := f.scenario()

	page := &OverviewPage{
		Title:    "Ethiopia Financial Inclusion Dashboard",
		Subtitle: "Forecasting Access and Usage (2025-2027)",
		Warnings: snap.Warnings,
	}

	latestAccess, okAccess := dataset.LatestValue(obs, config.IndicatorAccountOwnership)
	latestMM, okMM := dataset.LatestValue(obs, config.IndicatorMobileMoney)
	latestUsage, okUsage := dataset.LatestValue(obs, config.IndicatorDigitalPayment)
	forecast2027, okForecast := dataset.ForecastValue(
		snap.ForecastLong, config.IndicatorAccountOwnership, config.ForecastTargetYear, scenario)

	page.Metrics = []Metric{
		metricValue("Latest Account Ownership", latestAccess, okAccess, "Most recent Findex data"),
		metricValue("Mobile Money Accounts", latestMM, okMM, ""),
		metricValue("Digital Payment Usage", latestUsage, okUsage, ""),
	}

	forecastMetric := metricValue("2027 Forecast (Access)", forecast2027, okForecast, "")
	if okForecast {
		gap := config.AccessTargetPercent - forecast2027
		if gap > 0 {
			forecastMetric.Delta = fmt.Sprintf("%.1fpp to %.0f%% target", -gap, config.AccessTargetPercent)
		} else {
			forecastMetric.Delta = "Target met"
		}
	}
	page.Metrics = append(page.Metrics, forecastMetric)

	current := InsightPanel{Title: "Current State"}
	if okAccess && okMM {
		current.Lines = append(current.Lines,
			fmt.Sprintf("Account ownership: %.1f%%", latestAccess),
			fmt.Sprintf("Mobile money penetration: %.1f%%", latestMM),
			fmt.Sprintf("Traditional banking dominates: %.1fpp gap", latestAccess-latestMM),
		)
	}
	current.Lines = append(current.Lines, fmt.Sprintf("Total events tracked: %d", len(events)))

	outlook := InsightPanel{Title: "Forecast Outlook"}
	if okForecast {
		outlook.Lines = append(outlook.Lines,
			fmt.Sprintf("2027 %s forecast: %.1f%%", scenario, forecast2027))
		if lower, upper, ok := bandFor(snap.ForecastWide, config.IndicatorAccountOwnership, config.ForecastTargetYear); ok {
			outlook.Lines = append(outlook.Lines,
				fmt.Sprintf("Uncertainty range: %.1f%% - %.1f%%", lower, upper))
		}
	}
	outlook.Lines = append(outlook.Lines, "Key drivers: Telebirr, M-Pesa, NFIS-II")
	page.Insights = []InsightPanel{current, outlook}

	chart := &Chart{
		Title:  "Account Ownership: Historical + Forecast",
		XLabel: "Year",
		YLabel: "Percentage (%)",
	}
	if series := historicalSeries(obs, config.IndicatorAccountOwnership, "Historical"); series != nil {
		chart.Series = append(chart.Series, *series)
	}
	if series := forecastSeries(snap.ForecastLong, config.IndicatorAccountOwnership, scenario,
		fmt.Sprintf("Forecast (%s)", scenario)); series != nil {
		chart.Series = append(chart.Series, *series)
	}
	if len(chart.Series) > 0 {
		page.Chart = chart
	}

	s.logger.DebugContext(ctx, "overview rendered",
		slog.String("scenario", string(scenario)),
		slog.Int("observations", len(obs)))

	return page
}

// Coverage renders the data completeness page.
func (s *DashboardService) Coverage(ctx context.Context, f Filters) *CoveragePage {
	defer s.observe(ctx, "coverage", time.Now())

	snap := s.store.Snapshot(ctx)
	obs := dataset.FilterYearRange(dataset.Observations(snap.Unified), f.FromYear, f.ToYear)
	events := dataset.Events(snap.Unified)

	nObs := float64(len(obs))
	nEvents := float64(len(events))
	nLinks := float64(len(snap.ImpactLinks))

	page := &CoveragePage{
		Title: "Data Coverage & Quality",
		Metrics: []Metric{
			{Label: "Total Observations", Value: &nObs},
			{Label: "Total Events", Value: &nEvents},
			{Label: "Impact Links", Value: &nLinks},
		},
		Warnings: snap.Warnings,
	}

	if heatmap, table := coverageMatrix(obs); heatmap != nil {
		page.Heatmap = heatmap
		page.CoverageTable = table
	}

	if bar := eventsByCategory(events); bar != nil {
		page.EventsByCategory = bar
	}

	if len(events) > 0 {
		withDates, withoutDates := 0, 0
		for _, e := range events {
			if e.EventDateParsed != nil {
				withDates++
			} else {
				withoutDates++
			}
		}
		page.DateAvailability = &PieChart{
			Title:  "Event Date Availability",
			Labels: []string{"With Date", "Without Date"},
			Values: []float64{float64(withDates), float64(withoutDates)},
		}
	}

	return page
}

// Trends renders the overlaid indicator series page.
func (s *DashboardService) Trends(ctx context.Context, f Filters) *TrendsPage {
	defer s.observe(ctx, "trends", time.Now())

	snap := s.store.Snapshot(ctx)
	obs := dataset.FilterYearRange(dataset.Observations(snap.Unified), f.FromYear, f.ToYear)
	available := dataset.IndicatorCodes(obs)

	page := &TrendsPage{
		Title:               "Financial Inclusion Trends",
		AvailableIndicators: available,
		SelectedIndicators:  selectIndicators(available, f.Indicators),
		Warnings:            snap.Warnings,
	}

	if len(page.SelectedIndicators) == 0 {
		return page
	}

	chart := &Chart{
		Title:  "Indicator Trends Over Time",
		XLabel: "Date",
		YLabel: "Value (%)",
	}
	for _, code := range page.SelectedIndicators {
		if series := historicalSeries(obs, code, code); series != nil {
			series.Color = ""
			chart.Series = append(chart.Series, *series)

			page.Tables = append(page.Tables, indicatorTable(obs, code))
		}
	}
	if len(chart.Series) > 0 {
		page.Chart = chart
	}

	return page
}

// Events renders the event timeline, impact matrix heatmap and cumulative
// effect chart.
func (s *DashboardService) Events(ctx context.Context, f Filters) *EventsPage {
	defer s.observe(ctx, "events", time.Now())

	snap := s.store.Snapshot(ctx)
	events := dataset.Events(snap.Unified)
	dated := datedEvents(events, f.FromYear, f.ToYear)
	categories := dataset.EventCategories(dated)

	selected := intersect(categories, f.Categories)
	if len(selected) == 0 {
		selected = categories
	}
	selectedSet := make(map[string]bool, len(selected))
	for _, c := range selected {
		selectedSet[c] = true
	}

	page := &EventsPage{
		Title:              "Events & Impact Analysis",
		Categories:         categories,
		SelectedCategories: selected,
		Warnings:           snap.Warnings,
	}

	var filtered []domain.UnifiedRow
	for _, e := range dated {
		if selectedSet[e.Category] {
			filtered = append(filtered, e)
		}
	}

	for _, e := range filtered {
		page.Timeline = append(page.Timeline, TimelineEvent{
			Name:     e.Indicator,
			Category: e.Category,
			Date:     e.EventDateParsed.Format("2006-01-02"),
		})
	}

	if len(filtered) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EventDateParsed.After(*filtered[j].EventDateParsed)
		})
		table := &Table{
			Title:   "Event List",
			Columns: []string{"indicator", "category", "event_date"},
		}
		for _, e := range filtered {
			table.Rows = append(table.Rows, []string{
				e.Indicator, e.Category, e.EventDateParsed.Format("2006-01-02"),
			})
		}
		page.EventList = table
	}

	if snap.Matrix != nil {
		midpoint := 0.0
		heatmap := &Heatmap{
			Title:      "Event Impact Weights by Indicator",
			ColLabels:  snap.Matrix.Columns,
			Cells:      snap.Matrix.Cells,
			ColorScale: "RdYlGn",
			Midpoint:   &midpoint,
		}
		for _, key := range snap.Matrix.Rows {
			heatmap.RowLabels = append(heatmap.RowLabels, key.Event+" / "+key.Pillar)
		}
		page.Matrix = heatmap
	} else {
		page.MatrixNote = "Event matrix not available. Run the feature engineering step to generate it."
	}

	if effects := effectsChart(snap.Features); effects != nil {
		page.Effects = effects
	}

	return page
}

// Forecasts renders the scenario comparison page with the uncertainty band
// and the findings panel.
func (s *DashboardService) Forecasts(ctx context.Context, f Filters) *ForecastsPage {
	defer s.observe(ctx, "forecasts", time.Now())

	snap := s.store.Snapshot(ctx)

	page := &ForecastsPage{
		Title:    "Financial Inclusion Forecasts (2025-2027)",
		Warnings: snap.Warnings,
	}

	if !snap.HasForecasts() {
		return page
	}

	page.AvailableIndicators = dataset.ForecastIndicatorCodes(snap.ForecastLong)
	page.SelectedIndicator = selectForecastIndicator(page.AvailableIndicators, f.Indicator)

	obs := dataset.FilterYearRange(dataset.Observations(snap.Unified), f.FromYear, f.ToYear)

	chart := &Chart{
		Title:  fmt.Sprintf("%s: Historical + Forecast Scenarios", page.SelectedIndicator),
		XLabel: "Year",
		YLabel: "Percentage (%)",
	}
	if series := historicalSeries(obs, page.SelectedIndicator, "Historical"); series != nil {
		chart.Series = append(chart.Series, *series)
	}
	// The comparison chart always draws all three scenarios.
	for _, scenario := range domain.Scenarios {
		if series := forecastSeries(snap.ForecastLong, page.SelectedIndicator, scenario,
			capitalize(string(scenario))); series != nil {
			chart.Series = append(chart.Series, *series)
		}
	}
	if band := uncertaintyBand(snap.ForecastWide, page.SelectedIndicator); band != nil {
		chart.Band = band
	}
	if len(chart.Series) > 0 {
		page.Chart = chart
	}

	page.Table = forecastTable(snap)
	page.Findings = findings(snap.ForecastLong)

	return page
}

// Indicators lists the observation indicator codes for the selectors.
func (s *DashboardService) Indicators(ctx context.Context) *MetaIndicators {
	snap := s.store.Snapshot(ctx)
	return &MetaIndicators{
		Indicators: dataset.IndicatorCodes(dataset.Observations(snap.Unified)),
	}
}

// Categories lists the event categories for the selectors.
func (s *DashboardService) Categories(ctx context.Context) *MetaCategories {
	snap := s.store.Snapshot(ctx)
	return &MetaCategories{
		Categories: dataset.EventCategories(dataset.Events(snap.Unified)),
	}
}

// FilterMeta describes the filter bounds and option lists.
func (s *DashboardService) FilterMeta(ctx context.Context) *MetaFilters {
	snap := s.store.Snapshot(ctx)
	obs := dataset.Observations(snap.Unified)

	minYear := 2014
	if min, _, ok := dataset.YearBounds(obs); ok {
		minYear = min
	}

	meta := &MetaFilters{
		MinYear:            minYear,
		MaxYear:            config.ForecastTargetYear,
		ForecastIndicators: dataset.ForecastIndicatorCodes(snap.ForecastLong),
	}
	for _, scenario := range domain.Scenarios {
		meta.Scenarios = append(meta.Scenarios, string(scenario))
	}
	return meta
}

// ExportForecasts streams the long-form forecast table as CSV.
func (s *DashboardService) ExportForecasts(ctx context.Context, w io.Writer) error {
	snap := s.store.Snapshot(ctx)

	if err := exporter.WriteForecastCSV(w, snap.ForecastLong); err != nil {
		return fmt.Errorf("forecast export: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.Add(ctx, 1)
	}
	s.logger.InfoContext(ctx, "forecast export served",
		slog.Int("rows", len(snap.ForecastLong)))
	return nil
}

// HasForecasts reports whether the long-form forecast table loaded.
func (s *DashboardService) HasForecasts(ctx context.Context) bool {
	return s.store.Snapshot(ctx).HasForecasts()
}

// Reload discards the memoized datasets.
func (s *DashboardService) Reload(ctx context.Context) {
	s.store.Reload(ctx)
	s.logger.InfoContext(ctx, "dashboard data reload requested")
}

// ---- builders ----

func metricValue(label string, value float64, ok bool, help string) Metric {
	m := Metric{Label: label, Unit: "%", Help: help}
	if ok {
		v := value
		m.Value = &v
	}
	return m
}

func historicalSeries(obs []domain.UnifiedRow, code, name string) *Series {
	series := dataset.IndicatorSeries(obs, code)
	if len(series) == 0 {
		return nil
	}
	out := &Series{
		Name:  name,
		Mode:  "lines+markers",
		Color: historicalColor,
	}
	for _, row := range series {
		out.Points = append(out.Points, Point{
			Date:  row.ObservationDate.Format("2006-01-02"),
			Value: *row.ValueNumeric,
		})
	}
	return out
}

func forecastSeries(rows []domain.ForecastRow, code string, scenario domain.Scenario, name string) *Series {
	var matched []domain.ForecastRow
	for _, row := range rows {
		if row.IndicatorCode == code && row.Scenario == scenario {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Year < matched[j].Year })

	out := &Series{
		Name:  name,
		Mode:  "lines+markers",
		Color: scenarioColors[scenario],
		Dash:  true,
	}
	for _, row := range matched {
		out.Points = append(out.Points, Point{
			Date:  fmt.Sprintf("%d-01-01", row.Year),
			Value: row.ForecastValue,
		})
	}
	return out
}

func uncertaintyBand(bands []domain.ForecastBand, code string) *Band {
	var matched []domain.ForecastBand
	for _, band := range bands {
		if band.IndicatorCode == code {
			matched = append(matched, band)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Year < matched[j].Year })

	out := &Band{Name: "Uncertainty Band"}
	for _, band := range matched {
		date := fmt.Sprintf("%d-01-01", band.Year)
		out.Lower = append(out.Lower, Point{Date: date, Value: band.Lower})
		out.Upper = append(out.Upper, Point{Date: date, Value: band.Upper})
	}
	return out
}

func bandFor(bands []domain.ForecastBand, code string, year int) (float64, float64, bool) {
	for _, band := range bands {
		if band.IndicatorCode == code && band.Year == year {
			return band.Lower, band.Upper, true
		}
	}
	return 0, 0, false
}

// coverageMatrix builds the (indicator x year) observation-count heatmap
// and its table twin. Counts cover rows carrying both a year and a value.
func coverageMatrix(obs []domain.UnifiedRow) (*Heatmap, *Table) {
	counts := make(map[string]map[int]int)
	yearSet := make(map[int]bool)
	for _, row := range obs {
		if row.Year == 0 || !row.HasValue() || row.IndicatorCode == "" {
			continue
		}
		if counts[row.IndicatorCode] == nil {
			counts[row.IndicatorCode] = make(map[int]int)
		}
		counts[row.IndicatorCode][row.Year]++
		yearSet[row.Year] = true
	}
	if len(counts) == 0 {
		return nil, nil
	}

	indicators := make([]string, 0, len(counts))
	for code := range counts {
		indicators = append(indicators, code)
	}
	sort.Strings(indicators)

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	heatmap := &Heatmap{
		Title:      "Data Availability Heatmap",
		RowLabels:  indicators,
		ColorScale: "Blues",
	}
	table := &Table{
		Title:   "Coverage Table",
		Columns: []string{"indicator"},
	}
	for _, year := range years {
		label := strconv.Itoa(year)
		heatmap.ColLabels = append(heatmap.ColLabels, label)
		table.Columns = append(table.Columns, label)
	}

	for _, code := range indicators {
		cells := make([]float64, len(years))
		row := []string{code}
		for i, year := range years {
			cells[i] = float64(counts[code][year])
			row = append(row, strconv.Itoa(counts[code][year]))
		}
		heatmap.Cells = append(heatmap.Cells, cells)
		table.Rows = append(table.Rows, row)
	}

	return heatmap, table
}

func eventsByCategory(events []domain.UnifiedRow) *BarChart {
	counts := make(map[string]int)
	for _, e := range events {
		if e.Category != "" {
			counts[e.Category]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	// Highest count first; name breaks ties deterministically
	sort.SliceStable(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	bar := &BarChart{Title: "Events by Category"}
	for _, c := range categories {
		bar.Labels = append(bar.Labels, c)
		bar.Values = append(bar.Values, float64(counts[c]))
	}
	return bar
}

func indicatorTable(obs []domain.UnifiedRow, code string) Table {
	table := Table{
		Title:   code,
		Columns: []string{"observation_date", "value_numeric", "year"},
	}
	for _, row := range dataset.IndicatorSeries(obs, code) {
		table.Rows = append(table.Rows, []string{
			row.ObservationDate.Format("2006-01-02"),
			strconv.FormatFloat(*row.ValueNumeric, 'f', -1, 64),
			strconv.Itoa(row.Year),
		})
	}
	return table
}

// datedEvents returns events with a resolved date, optionally restricted
// to the year range.
func datedEvents(events []domain.UnifiedRow, from, to int) []domain.UnifiedRow {
	var dated []domain.UnifiedRow
	for _, e := range events {
		if e.EventDateParsed == nil {
			continue
		}
		year := e.EventDateParsed.Year()
		if from != 0 && year < from {
			continue
		}
		if to != 0 && year > to {
			continue
		}
		dated = append(dated, e)
	}
	return dated
}

// effectsChart draws up to four cumulative event-effect columns.
func effectsChart(features *domain.EventFeatures) *Chart {
	cols := features.EffectColumns()
	if len(cols) == 0 {
		return nil
	}
	if len(cols) > 4 {
		cols = cols[:4]
	}

	chart := &Chart{
		Title:  "Event Effects Timeline",
		XLabel: "Date",
		YLabel: "Cumulative Effect",
	}
	for _, col := range cols {
		series := Series{
			Name: strings.TrimPrefix(col, "event_effect_"),
			Mode: "lines",
		}
		values := features.Series[col]
		for i, date := range features.Dates {
			if i >= len(values) {
				break
			}
			series.Points = append(series.Points, Point{
				Date:  date.Format("2006-01-02"),
				Value: values[i],
			})
		}
		chart.Series = append(chart.Series, series)
	}
	return chart
}

// forecastTable prefers the wide form with its bounds; the long form is
// the fallback.
func forecastTable(snap *domain.Snapshot) *Table {
	if snap.HasBands() {
		table := &Table{
			Title:   "Forecast Data Table",
			Columns: []string{"indicator_code", "year", "base", "lower", "upper"},
		}
		for _, band := range snap.ForecastWide {
			base := ""
			if band.Base != nil {
				base = strconv.FormatFloat(*band.Base, 'f', -1, 64)
			}
			table.Rows = append(table.Rows, []string{
				band.IndicatorCode,
				strconv.Itoa(band.Year),
				base,
				strconv.FormatFloat(band.Lower, 'f', -1, 64),
				strconv.FormatFloat(band.Upper, 'f', -1, 64),
			})
		}
		return table
	}

	table := &Table{
		Title:   "Forecast Data Table",
		Columns: []string{"indicator_code", "year", "scenario", "forecast_value"},
	}
	for _, row := range snap.ForecastLong {
		table.Rows = append(table.Rows, []string{
			row.IndicatorCode,
			strconv.Itoa(row.Year),
			string(row.Scenario),
			strconv.FormatFloat(row.ForecastValue, 'f', -1, 64),
		})
	}
	return table
}

// findings builds the fixed interpretation panel. The 2027 lookups are
// always base scenario regardless of the page filter.
func findings(rows []domain.ForecastRow) *InsightPanel {
	panel := &InsightPanel{Title: "Key Findings"}

	if access, ok := dataset.ForecastValue(rows, config.IndicatorAccountOwnership,
		config.ForecastTargetYear, domain.ScenarioBase); ok {
		panel.Lines = append(panel.Lines,
			fmt.Sprintf("Account Ownership 2027 (base): %.1f%%", access))
		gap := config.AccessTargetPercent - access
		if gap > 0 {
			panel.Lines = append(panel.Lines,
				fmt.Sprintf("Gap to %.0f%% target: %.1fpp", config.AccessTargetPercent, gap))
		} else {
			panel.Lines = append(panel.Lines,
				fmt.Sprintf("On track to meet %.0f%% target", config.AccessTargetPercent))
		}
	}

	if usage, ok := dataset.ForecastValue(rows, config.IndicatorDigitalPayment,
		config.ForecastTargetYear, domain.ScenarioBase); ok {
		panel.Lines = append(panel.Lines,
			fmt.Sprintf("Digital Payment Usage 2027 (base): %.1f%%", usage))
	}

	panel.Lines = append(panel.Lines,
		"Key drivers: Telebirr expansion (54M+ users)",
		"Key drivers: M-Pesa Ethiopia + EthSwitch integration",
		"Key drivers: NFIS-II policy implementation",
		"Key drivers: Fayda Digital ID rollout",
		"Risks: survey methodology vs operator data discrepancy",
		"Risks: account overlap (multiple accounts per person)",
		"Risks: cash culture and trust barriers",
		"Risks: affordability constraints",
	)
	return panel
}

// selectIndicators resolves the Trends multi-select: the request's valid
// choices, else account ownership + digital payments when present, else
// the first two available.
func selectIndicators(available, requested []string) []string {
	if selected := intersect(available, requested); len(selected) > 0 {
		return selected
	}

	availableSet := make(map[string]bool, len(available))
	for _, code := range available {
		availableSet[code] = true
	}

	if availableSet[config.IndicatorAccountOwnership] {
		defaults := []string{config.IndicatorAccountOwnership}
		if availableSet[config.IndicatorDigitalPayment] {
			defaults = append(defaults, config.IndicatorDigitalPayment)
		}
		return defaults
	}

	if len(available) > 2 {
		return available[:2]
	}
	return available
}

func selectForecastIndicator(available []string, requested string) string {
	for _, code := range available {
		if code == requested {
			return code
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// intersect keeps the requested values that exist, in available order.
func intersect(available, requested []string) []string {
	if len(requested) == 0 {
		return nil
	}
	requestedSet := make(map[string]bool, len(requested))
	for _, v := range requested {
		requestedSet[v] = true
	}
	var out []string
	for _, v := range available {
		if requestedSet[v] {
			out = append(out, v)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
