package services

// View models describe the dashboard widgets declaratively. The browser
// draws them; nothing here depends on a charting library.

// Metric is a single KPI card. Value is nil when the underlying data is
// absent, rendered as "N/A".
type Metric struct {
	Label string   `json:"label"`
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Delta string   `json:"delta,omitempty"`
	Help  string   `json:"help,omitempty"`
}

// Point is one (date, value) pair of a series. Date is ISO-8601.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is one line or marker trace of a chart.
type Series struct {
	Name   string  `json:"name"`
	Mode   string  `json:"mode,omitempty"` // "lines", "lines+markers"
	Color  string  `json:"color,omitempty"`
	Dash   bool    `json:"dash,omitempty"`
	Points []Point `json:"points"`
}

// Band is a shaded uncertainty region between two bounds.
type Band struct {
	Name  string  `json:"name"`
	Lower []Point `json:"lower"`
	Upper []Point `json:"upper"`
}

// Chart is a titled set of series with an optional band.
type Chart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Series []Series `json:"series"`
	Band   *Band    `json:"band,omitempty"`
}

// Heatmap is a labeled matrix of values.
type Heatmap struct {
	Title      string      `json:"title"`
	RowLabels  []string    `json:"row_labels"`
	ColLabels  []string    `json:"col_labels"`
	Cells      [][]float64 `json:"cells"`
	ColorScale string      `json:"color_scale,omitempty"`
	Midpoint   *float64    `json:"midpoint,omitempty"`
}

// BarChart is a categorical bar chart.
type BarChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// PieChart is a share-of-total chart.
type PieChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Table is a rendered data table with string cells.
type Table struct {
	Title   string     `json:"title,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// InsightPanel is a titled block of narrative lines.
type InsightPanel struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// TimelineEvent is one dated event on the scatter timeline.
type TimelineEvent struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// OverviewPage is the landing page view model.
type OverviewPage struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Metrics  []Metric       `json:"metrics"`
	Insights []InsightPanel `json:"insights"`
	Chart    *Chart         `json:"chart,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

// CoveragePage summarizes dataset completeness.
type CoveragePage struct {
	Title            string    `json:"title"`
	Metrics          []Metric  `json:"metrics"`
	Heatmap          *Heatmap  `json:"heatmap,omitempty"`
	CoverageTable    *Table    `json:"coverage_table,omitempty"`
	EventsByCategory *BarChart `json:"events_by_category,omitempty"`
	DateAvailability *PieChart `json:"date_availability,omitempty"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// TrendsPage overlays selected indicator series.
type TrendsPage struct {
	Title               string   `json:"title"`
	AvailableIndicators []string `json:"available_indicators"`
	SelectedIndicators  []string `json:"selected_indicators"`
	Chart               *Chart   `json:"chart,omitempty"`
	Tables              []Table  `json:"tables,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
}

// EventsPage shows the event timeline, impact matrix and effect series.
type EventsPage struct {
	Title              string          `json:"title"`
	Categories         []string        `json:"categories"`
	SelectedCategories []string        `json:"selected_categories"`
	Timeline           []TimelineEvent `json:"timeline"`
	EventList          *Table          `json:"event_list,omitempty"`
	Matrix             *Heatmap        `json:"matrix,omitempty"`
	MatrixNote         string          `json:"matrix_note,omitempty"`
	Effects            *Chart          `json:"effects,omitempty"`
	Warnings           []string        `json:"warnings,omitempty"`
}

// ForecastsPage compares forecast scenarios against history.
type ForecastsPage struct {
	Title               string        `json:"title"`
	AvailableIndicators []string      `json:"available_indicators"`
	SelectedIndicator   string        `json:"selected_indicator"`
	Chart               *Chart        `json:"chart,omitempty"`
	Table               *Table        `json:"table,omitempty"`
	Findings            *InsightPanel `json:"findings,omitempty"`
	Warnings            []string      `json:"warnings,omitempty"`
}

// MetaIndicators lists the observation indicator codes.
type MetaIndicators struct {
	Indicators []string `json:"indicators"`
}

// MetaCategories lists the event categories.
type MetaCategories struct {
	Categories []string `json:"categories"`
}

// MetaFilters describes the filter bounds and option lists.
type MetaFilters struct {
	MinYear            int      `json:"min_year"`
	MaxYear            int      `json:"max_year"`
	Scenarios          []string `json:"scenarios"`
	ForecastIndicators []string `json:"forecast_indicators"`
}
