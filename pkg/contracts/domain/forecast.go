package domain

// Scenario identifies a forecast variant for the same indicator/year.
type Scenario string

const (
	ScenarioBase        Scenario = "base"
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// Scenarios lists all variants in display order.
var Scenarios = []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}

// Valid reports whether s is one of the known scenarios.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioBase, ScenarioOptimistic, ScenarioPessimistic:
		return true
	}
	return false
}

// ForecastRow is one long-form forecast record: a projected value for
// (indicator, year, scenario).
type ForecastRow struct {
	IndicatorCode string   `json:"indicator_code"`
	Year          int      `json:"year"`
	Scenario      Scenario `json:"scenario"`
	ForecastValue float64  `json:"forecast_value"`
}

// ForecastBand is one wide-form forecast record carrying the uncertainty
// bounds for (indicator, year).
type ForecastBand struct {
	IndicatorCode string   `json:"indicator_code"`
	Year          int      `json:"year"`
	Lower         float64  `json:"lower"`
	Upper         float64  `json:"upper"`
	Base          *float64 `json:"base,omitempty"`
}
