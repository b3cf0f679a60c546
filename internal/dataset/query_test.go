package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fidash/pkg/contracts/domain"
)

func obs(code string, date string, value float64) domain.UnifiedRow {
	t, _ := time.Parse("2006-01-02", date)
	v := value
	return domain.UnifiedRow{
		RecordType:      domain.RecordTypeObservation,
		IndicatorCode:   code,
		ObservationDate: &t,
		ValueNumeric:    &v,
		Year:            t.Year(),
	}
}

func TestPartition_TotalAndDisjoint(t *testing.T) {
	unified := []domain.UnifiedRow{
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "ACC_OWNERSHIP"},
		{RecordType: domain.RecordTypeEvent, Category: "policy"},
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "USG_DIGITAL_PAYMENT"},
		{RecordType: domain.RecordTypeImpactLink},
	}

	observations := Observations(unified)
	events := Events(unified)

	assert.Len(t, observations, 2)
	assert.Len(t, events, 1)
	// impact_link rows belong to neither side of the partition
	assert.Equal(t, len(unified)-1, len(observations)+len(events))
}

func TestIndicatorSeries_SortedAscending(t *testing.T) {
	rows := []domain.UnifiedRow{
		obs("ACC_OWNERSHIP", "2022-01-01", 30),
		obs("ACC_OWNERSHIP", "2020-01-01", 10),
		obs("ACC_OWNERSHIP", "2021-01-01", 20),
		obs("ACC_MM_ACCOUNT", "2021-01-01", 5),
	}

	series := IndicatorSeries(rows, "ACC_OWNERSHIP")
	require.Len(t, series, 3)
	assert.Equal(t, 10.0, *series[0].ValueNumeric)
	assert.Equal(t, 20.0, *series[1].ValueNumeric)
	assert.Equal(t, 30.0, *series[2].ValueNumeric)
}

func TestIndicatorSeries_DropsIncompleteRows(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2021-01-01")
	v := 42.0
	rows := []domain.UnifiedRow{
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "X", ObservationDate: &d},
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "X", ValueNumeric: &v},
		obs("X", "2021-06-01", 43),
	}

	series := IndicatorSeries(rows, "X")
	require.Len(t, series, 1)
	assert.Equal(t, 43.0, *series[0].ValueNumeric)
}

func TestIndicatorSeries_UnknownCodeIsEmptyNotError(t *testing.T) {
	rows := []domain.UnifiedRow{obs("ACC_OWNERSHIP", "2021-01-01", 20)}
	assert.Empty(t, IndicatorSeries(rows, "NO_SUCH_CODE"))
	assert.Empty(t, IndicatorSeries(nil, "ACC_OWNERSHIP"))
}

func TestLatestValue(t *testing.T) {
	rows := []domain.UnifiedRow{
		obs("ACC_OWNERSHIP", "2020-01-01", 10),
		obs("ACC_OWNERSHIP", "2021-01-01", 20),
		obs("ACC_OWNERSHIP", "2022-01-01", 30),
	}

	v, ok := LatestValue(rows, "ACC_OWNERSHIP")
	require.True(t, ok)
	assert.Equal(t, 30.0, v)

	_, ok = LatestValue(rows, "NO_SUCH_CODE")
	assert.False(t, ok)
}

func TestForecastValue(t *testing.T) {
	rows := []domain.ForecastRow{
		{IndicatorCode: "ACC_OWNERSHIP", Year: 2027, Scenario: domain.ScenarioBase, ForecastValue: 57.3},
		{IndicatorCode: "ACC_OWNERSHIP", Year: 2027, Scenario: domain.ScenarioOptimistic, ForecastValue: 63.0},
	}

	v, ok := ForecastValue(rows, "ACC_OWNERSHIP", 2027, domain.ScenarioBase)
	require.True(t, ok)
	assert.Equal(t, 57.3, v)

	// Near misses on any of the three keys are absent, not errors
	_, ok = ForecastValue(rows, "ACC_OWNERSHIP", 2026, domain.ScenarioBase)
	assert.False(t, ok)
	_, ok = ForecastValue(rows, "USG_DIGITAL_PAYMENT", 2027, domain.ScenarioBase)
	assert.False(t, ok)
	_, ok = ForecastValue(rows, "ACC_OWNERSHIP", 2027, domain.ScenarioPessimistic)
	assert.False(t, ok)
}

func TestIndicatorCodesAndEventCategories(t *testing.T) {
	unified := []domain.UnifiedRow{
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "USG_DIGITAL_PAYMENT"},
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "ACC_OWNERSHIP"},
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "ACC_OWNERSHIP"},
		{RecordType: domain.RecordTypeEvent, Category: "policy"},
		{RecordType: domain.RecordTypeEvent, Category: "product_launch"},
		{RecordType: domain.RecordTypeEvent, Category: "policy"},
	}

	assert.Equal(t, []string{"ACC_OWNERSHIP", "USG_DIGITAL_PAYMENT"}, IndicatorCodes(Observations(unified)))
	assert.Equal(t, []string{"policy", "product_launch"}, EventCategories(Events(unified)))
}

func TestForecastIndicatorCodes_FirstSeenOrder(t *testing.T) {
	rows := []domain.ForecastRow{
		{IndicatorCode: "ACC_OWNERSHIP"},
		{IndicatorCode: "USG_DIGITAL_PAYMENT"},
		{IndicatorCode: "ACC_OWNERSHIP"},
	}
	assert.Equal(t, []string{"ACC_OWNERSHIP", "USG_DIGITAL_PAYMENT"}, ForecastIndicatorCodes(rows))
}

func TestFilterYearRange(t *testing.T) {
	rows := []domain.UnifiedRow{
		obs("X", "2018-01-01", 1),
		obs("X", "2020-01-01", 2),
		obs("X", "2024-01-01", 3),
		{RecordType: domain.RecordTypeObservation, IndicatorCode: "X"}, // no date
	}

	// Zero bounds pass everything through untouched
	assert.Len(t, FilterYearRange(rows, 0, 0), 4)

	filtered := FilterYearRange(rows, 2019, 2023)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2020, filtered[0].Year)

	// Undated rows are dropped once a bound is set
	assert.Len(t, FilterYearRange(rows, 2018, 0), 3)
}

func TestYearBounds(t *testing.T) {
	rows := []domain.UnifiedRow{
		obs("X", "2014-01-01", 1),
		obs("X", "2022-01-01", 2),
	}

	min, max, ok := YearBounds(rows)
	require.True(t, ok)
	assert.Equal(t, 2014, min)
	assert.Equal(t, 2022, max)

	_, _, ok = YearBounds(nil)
	assert.False(t, ok)
}
