package domain

import (
	"strings"
	"time"
)

// EventFeatures is a time-indexed table of cumulative event-effect columns
// produced upstream. Column order is preserved from the source file.
type EventFeatures struct {
	Dates   []time.Time          `json:"dates"`
	Columns []string             `json:"columns"`
	Series  map[string][]float64 `json:"series"`
}

// Len returns the number of time points.
func (f *EventFeatures) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Dates)
}

// EffectColumns returns the columns whose name marks them as event-effect
// series, in source order.
func (f *EventFeatures) EffectColumns() []string {
	if f == nil {
		return nil
	}
	var cols []string
	for _, c := range f.Columns {
		if strings.Contains(c, "event_effect") {
			cols = append(cols, c)
		}
	}
	return cols
}

// ImpactKey is the composite row key of the event-indicator matrix.
type ImpactKey struct {
	Event  string `json:"event"`
	Pillar string `json:"pillar"`
}

// ImpactMatrix is the two-level-keyed matrix of signed impact weights,
// rendered as a heatmap. Cells[i][j] is the weight of Rows[i] on
// Columns[j]; missing cells are NaN-free zeros from the source.
type ImpactMatrix struct {
	Rows    []ImpactKey `json:"rows"`
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"cells"`
}

// Size returns the (rows, columns) dimensions.
func (m *ImpactMatrix) Size() (int, int) {
	if m == nil {
		return 0, 0
	}
	return len(m.Rows), len(m.Columns)
}
