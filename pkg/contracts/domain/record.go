package domain

import (
	"time"
)

// RecordType discriminates rows within the unified dataset.
type RecordType string

const (
	RecordTypeObservation RecordType = "observation"
	RecordTypeEvent       RecordType = "event"
	RecordTypeImpactLink  RecordType = "impact_link"
)

// UnifiedRow represents one row of the unified observations/events table.
// Observations carry a measured indicator value at a point in time; events
// are dated occurrences (policy changes, product launches) tagged with a
// category and an associated indicator. Missing or unparseable fields are
// nil, never zero values.
type UnifiedRow struct {
	RecordType      RecordType `json:"record_type"`
	IndicatorCode   string     `json:"indicator_code,omitempty"`
	Indicator       string     `json:"indicator,omitempty"`
	Category        string     `json:"category,omitempty"`
	ObservationDate *time.Time `json:"observation_date,omitempty"`
	EventDate       *time.Time `json:"event_date,omitempty"`
	ValueNumeric    *float64   `json:"value_numeric,omitempty"`

	// Year is derived from ObservationDate at load time; 0 when the date
	// is missing.
	Year int `json:"year,omitempty"`

	// EventDateParsed is the event date resolved per the fallback rule:
	// event_date when present and parseable, else observation_date.
	EventDateParsed *time.Time `json:"event_date_parsed,omitempty"`
}

// HasDate reports whether the row carries a usable observation date.
func (r UnifiedRow) HasDate() bool {
	return r.ObservationDate != nil
}

// HasValue reports whether the row carries a numeric value.
func (r UnifiedRow) HasValue() bool {
	return r.ValueNumeric != nil
}

// ImpactLink represents one impact_link row tying an event to an indicator
// or pillar. Kept as raw columns; the dashboard only counts and lists them.
type ImpactLink struct {
	Event     string  `json:"event"`
	Indicator string  `json:"indicator"`
	Weight    float64 `json:"weight,omitempty"`
}
