package domain

// Snapshot is the immutable set of datasets a dashboard session renders
// against. Absent datasets are nil/empty; the conditions that made them
// absent are recorded as Warnings for display, never surfaced as errors.
type Snapshot struct {
	Unified      []UnifiedRow   `json:"-"`
	ImpactLinks  []ImpactLink   `json:"-"`
	Features     *EventFeatures `json:"-"`
	Matrix       *ImpactMatrix  `json:"-"`
	ForecastLong []ForecastRow  `json:"-"`
	ForecastWide []ForecastBand `json:"-"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// HasForecasts reports whether the long-form forecast table loaded.
func (s *Snapshot) HasForecasts() bool {
	return s != nil && len(s.ForecastLong) > 0
}

// HasBands reports whether the optional wide-form table loaded.
func (s *Snapshot) HasBands() bool {
	return s != nil && len(s.ForecastWide) > 0
}
