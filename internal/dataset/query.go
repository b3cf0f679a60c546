package dataset

import (
	"sort"

	"fidash/pkg/contracts/domain"
)

// Observations returns the observation rows of the unified table. Together
// with Events this is a disjoint partition; rows of any other record type
// belong to neither.
func Observations(unified []domain.UnifiedRow) []domain.UnifiedRow {
	var obs []domain.UnifiedRow
	for _, row := range unified {
		if row.RecordType == domain.RecordTypeObservation {
			obs = append(obs, row)
		}
	}
	return obs
}

// Events returns the event rows of the unified table.
func Events(unified []domain.UnifiedRow) []domain.UnifiedRow {
	var events []domain.UnifiedRow
	for _, row := range unified {
		if row.RecordType == domain.RecordTypeEvent {
			events = append(events, row)
		}
	}
	return events
}

// IndicatorSeries returns one indicator's observations with both date and
// value present, sorted ascending by date. Unknown codes yield an empty
// slice, never an error.
func IndicatorSeries(obs []domain.UnifiedRow, code string) []domain.UnifiedRow {
	var series []domain.UnifiedRow
	for _, row := range obs {
		if row.IndicatorCode == code && row.HasDate() && row.HasValue() {
			series = append(series, row)
		}
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].ObservationDate.Before(*series[j].ObservationDate)
	})
	return series
}

// LatestValue returns the indicator's value at its maximum observation date.
// The second return is false when the series is empty.
func LatestValue(obs []domain.UnifiedRow, code string) (float64, bool) {
	series := IndicatorSeries(obs, code)
	if len(series) == 0 {
		return 0, false
	}
	return *series[len(series)-1].ValueNumeric, true
}

// ForecastValue returns the forecast for an exact (indicator, year,
// scenario) match. The second return is false when no row matches.
func ForecastValue(rows []domain.ForecastRow, code string, year int, scenario domain.Scenario) (float64, bool) {
	for _, row := range rows {
		if row.IndicatorCode == code && row.Year == year && row.Scenario == scenario {
			return row.ForecastValue, true
		}
	}
	return 0, false
}

// IndicatorCodes returns the distinct indicator codes present in the
// observations, sorted.
func IndicatorCodes(obs []domain.UnifiedRow) []string {
	return distinct(obs, func(r domain.UnifiedRow) string { return r.IndicatorCode })
}

// EventCategories returns the distinct categories present in the events,
// sorted.
func EventCategories(events []domain.UnifiedRow) []string {
	return distinct(events, func(r domain.UnifiedRow) string { return r.Category })
}

// ForecastIndicatorCodes returns the distinct indicator codes present in
// the long-form forecast table, in first-seen order.
func ForecastIndicatorCodes(rows []domain.ForecastRow) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, row := range rows {
		if row.IndicatorCode == "" || seen[row.IndicatorCode] {
			continue
		}
		seen[row.IndicatorCode] = true
		codes = append(codes, row.IndicatorCode)
	}
	return codes
}

// FilterYearRange restricts rows to from <= year <= to. A zero bound is
// open on that side. Rows without a derived year are dropped whenever a
// bound is set.
func FilterYearRange(rows []domain.UnifiedRow, from, to int) []domain.UnifiedRow {
	if from == 0 && to == 0 {
		return rows
	}
	var filtered []domain.UnifiedRow
	for _, row := range rows {
		if row.Year == 0 {
			continue
		}
		if from != 0 && row.Year < from {
			continue
		}
		if to != 0 && row.Year > to {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// YearBounds returns the minimum and maximum observed year. The third
// return is false when no row carries a year.
func YearBounds(obs []domain.UnifiedRow) (int, int, bool) {
	min, max := 0, 0
	for _, row := range obs {
		if row.Year == 0 {
			continue
		}
		if min == 0 || row.Year < min {
			min = row.Year
		}
		if row.Year > max {
			max = row.Year
		}
	}
	return min, max, min != 0
}

func distinct(rows []domain.UnifiedRow, key func(domain.UnifiedRow) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		k := key(row)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}
