package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoDayFeed builds two full days of 3-hour samples, 8 per day, starting at
// 01:00 on day so the last sample of each day lands on hour 22 and closes the
// bucket. Day one is sunny with temps 2..10; day two carries rain with a
// higher high (12) and a lower low (1).
func twoDayFeed(day time.Time) []ForecastEntry {
	entries := make([]ForecastEntry, 0, 16)
	for i := 0; i < 16; i++ {
		sample := day.Add(time.Duration(1+3*(i%8)) * time.Hour).AddDate(0, 0, i/8)

		entry := ForecastEntry{
			Dt: sample.Unix(),
			Main: MainBlock{
				TempMin: 2 + float64(i%8)*0.25,
				TempMax: 5 + float64(i%8)*0.5,
			},
			Weather: []ConditionEntry{{ID: 800, Icon: "01d"}},
		}
		if i < 8 {
			if i == 5 {
				entry.Main.TempMax = 10 // day-one high
			}
		} else {
			entry.Weather = []ConditionEntry{{ID: 500, Icon: "10d"}}
			if i == 13 {
				entry.Main.TempMax = 12 // day-two high
			}
			if i == 9 {
				entry.Main.TempMin = 1 // day-two low
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestAggregateForecastTwoFullDays(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feed := twoDayFeed(day)

	// Feed starts "today": no synthetic entry is prepended.
	got := AggregateForecast(ConditionCloudy, 8, 3, feed, day.YearDay(), time.UTC)
	require.Len(t, got, 2)

	assert.Equal(t, ConditionSunny, got[0].Condition)
	assert.Equal(t, 10.0, got[0].High)
	assert.Equal(t, 2.0, got[0].Low)

	// The running min/max carry across the bucket boundary; day two's high
	// and low therefore span the whole feed.
	assert.Equal(t, ConditionShowers, got[1].Condition)
	assert.Equal(t, 12.0, got[1].High)
	assert.Equal(t, 1.0, got[1].Low)
}

func TestAggregateForecastSynthesizesToday(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feed := twoDayFeed(day)

	// "Now" is the day before the feed starts, so today has no bucket of its
	// own and is synthesized from the current conditions.
	got := AggregateForecast(ConditionCloudy, 8, 3, feed, day.YearDay()-1, time.UTC)
	require.Len(t, got, 3)

	assert.Equal(t, DailyForecast{Condition: ConditionCloudy, High: 8, Low: 3}, got[0])
	assert.Equal(t, ConditionSunny, got[1].Condition)
	assert.Equal(t, ConditionShowers, got[2].Condition)
}

func TestAggregateForecastDropsUnclosedTail(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feed := twoDayFeed(day)

	// Three extra day-three samples, none past hour 21: the third bucket is
	// opened but never closed, and must be dropped rather than flushed.
	for i := 0; i < 3; i++ {
		sample := day.AddDate(0, 0, 2).Add(time.Duration(1+3*i) * time.Hour)
		feed = append(feed, ForecastEntry{
			Dt:      sample.Unix(),
			Main:    MainBlock{TempMin: 4, TempMax: 6},
			Weather: []ConditionEntry{{ID: 741, Icon: "50d"}},
		})
	}

	got := AggregateForecast(ConditionCloudy, 8, 3, feed, day.YearDay(), time.UTC)
	assert.Len(t, got, 2)
}

func TestAggregateForecastBucketConditionFromBoundaryEntry(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feed := twoDayFeed(day)

	// A condition change mid-day must not override the bucket's condition,
	// which is fixed by the first sample of the day.
	feed[3].Weather = []ConditionEntry{{ID: 602, Icon: "13d"}}

	got := AggregateForecast(ConditionCloudy, 8, 3, feed, day.YearDay(), time.UTC)
	require.Len(t, got, 2)
	assert.Equal(t, ConditionSunny, got[0].Condition)
}

func TestAggregateForecastMissingBoundaryCondition(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	feed := twoDayFeed(day)
	feed[0].Weather = nil

	got := AggregateForecast(ConditionCloudy, 8, 3, feed, day.YearDay(), time.UTC)
	require.Len(t, got, 2)
	assert.Equal(t, ConditionNotAvailable, got[0].Condition)
}

func TestAggregateForecastEmptyFeed(t *testing.T) {
	got := AggregateForecast(ConditionCloudy, 8, 3, nil, 100, time.UTC)
	assert.Empty(t, got)
}
