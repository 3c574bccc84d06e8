package weather

import "time"

// forecastEntriesPerDay is the number of 3-hour samples the upstream feed
// delivers per calendar day.
const forecastEntriesPerDay = 8

// AggregateForecast buckets the ordered 3-hour forecast feed into one entry
// per day.
//
// The walk reproduces the upstream feed's implicit contract exactly:
//
//   - when the feed starts on a day other than nowDayOfYear, a leading entry
//     for "today" is synthesized from the current conditions, since today has
//     no bucket of its own;
//   - the running min/max are seeded from the first entry and updated on every
//     sample; they are not reset at bucket boundaries;
//   - every forecastEntriesPerDay-th entry opens a new bucket and fixes its
//     condition from that entry;
//   - a bucket is closed and appended when a sample's local hour-of-day
//     exceeds 21, the last sample before the day rolls over;
//   - trailing buckets that never see such a sample are dropped, not flushed.
func AggregateForecast(currentCondition Condition, currentHigh, currentLow float64, entries []ForecastEntry, nowDayOfYear int, tz *time.Location) []DailyForecast {
	forecast := make([]DailyForecast, 0, len(entries)/forecastEntriesPerDay+1)

	var (
		bucketCondition Condition
		min, max        float64
	)

	for i, entry := range entries {
		sampleTime := time.Unix(entry.Dt, 0).In(tz)

		if i == 0 {
			if sampleTime.YearDay() != nowDayOfYear {
				forecast = append(forecast, DailyForecast{
					Condition: currentCondition,
					High:      currentHigh,
					Low:       currentLow,
				})
			}
			max = entry.Main.TempMax
			min = entry.Main.TempMin
		}

		if entry.Main.TempMax > max {
			max = entry.Main.TempMax
		}
		if entry.Main.TempMin < min {
			min = entry.Main.TempMin
		}

		if i%forecastEntriesPerDay == 0 {
			bucketCondition = ConditionNotAvailable
			if len(entry.Weather) > 0 {
				bucketCondition = MapCondition(entry.Weather[0].ID, entry.Weather[0].Icon)
			}
		}

		if sampleTime.Hour() > 21 {
			forecast = append(forecast, DailyForecast{
				Condition: bucketCondition,
				High:      max,
				Low:       min,
			})
		}
	}

	return forecast
}
