package weather

// Condition represents a canonical weather-condition code, independent of the
// upstream provider's numeric vocabulary.
type Condition string

const (
	ConditionTornado           Condition = "tornado"
	ConditionTropicalStorm     Condition = "tropical_storm"
	ConditionHurricane         Condition = "hurricane"
	ConditionThunderstorms     Condition = "thunderstorms"
	ConditionScatteredThunder  Condition = "scattered_thunderstorms"
	ConditionIsolatedThunder   Condition = "isolated_thunderstorms"
	ConditionDrizzle           Condition = "drizzle"
	ConditionShowers           Condition = "showers"
	ConditionScatteredShowers  Condition = "scattered_showers"
	ConditionThundershower     Condition = "thundershower"
	ConditionFreezingRain      Condition = "freezing_rain"
	ConditionLightSnowShowers  Condition = "light_snow_showers"
	ConditionSnow              Condition = "snow"
	ConditionHeavySnow         Condition = "heavy_snow"
	ConditionSleet             Condition = "sleet"
	ConditionMixedRainAndSnow  Condition = "mixed_rain_and_snow"
	ConditionFoggy             Condition = "foggy"
	ConditionSmoky             Condition = "smoky"
	ConditionHaze              Condition = "haze"
	ConditionDust              Condition = "dust"
	ConditionBlustery          Condition = "blustery"
	ConditionWindy             Condition = "windy"
	ConditionCold              Condition = "cold"
	ConditionHot               Condition = "hot"
	ConditionHail              Condition = "hail"
	ConditionSunny             Condition = "sunny"
	ConditionClearNight        Condition = "clear_night"
	ConditionPartlyCloudyDay   Condition = "partly_cloudy_day"
	ConditionPartlyCloudyNight Condition = "partly_cloudy_night"
	ConditionCloudy            Condition = "cloudy"
	ConditionMostlyCloudyDay   Condition = "mostly_cloudy_day"
	ConditionMostlyCloudyNight Condition = "mostly_cloudy_night"
	ConditionNotAvailable      Condition = "not_available"
)

// GeoQuery asks for weather at a geographic coordinate.
type GeoQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationQuery asks for weather at a provider-known city. Dedupe equality is
// defined over all five fields, not just the identifier.
type LocationQuery struct {
	CityID     string `json:"cityId"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	CountryID  string `json:"countryId,omitempty"`
}

// NameQuery is a free-text city-name search.
type NameQuery struct {
	Name string `json:"name"`
}

// Query is the tagged union of the three request kinds.
type Query interface {
	queryKind() string
}

func (GeoQuery) queryKind() string      { return "geo" }
func (LocationQuery) queryKind() string { return "location" }
func (NameQuery) queryKind() string     { return "name" }

// DailyForecast is one aggregated day of the multi-day forecast.
type DailyForecast struct {
	Condition Condition `json:"condition"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
}

// WeatherSnapshot is the canonical weather view returned to the host
// subsystem. Temperatures are in the requested unit system; wind speed is
// always reported in km/h, matching the upstream convention.
type WeatherSnapshot struct {
	City          string          `json:"city"`
	Temperature   float64         `json:"temperature"`
	Metric        bool            `json:"metric"`
	Condition     Condition       `json:"condition"`
	Humidity      float64         `json:"humidityPercent"`
	TodayHigh     float64         `json:"todayHigh"`
	TodayLow      float64         `json:"todayLow"`
	WindSpeed     float64         `json:"windSpeed"`
	WindDirection float64         `json:"windDirection"`
	WindSpeedUnit string          `json:"windSpeedUnit"`
	Forecast      []DailyForecast `json:"forecast"`
}

// VerificationState tracks whether the configured API key has been accepted
// by the upstream provider.
type VerificationState int

const (
	VerificationUnverified VerificationState = iota
	VerificationPending
	VerificationInvalid
	VerificationVerified
)

func (v VerificationState) String() string {
	switch v {
	case VerificationPending:
		return "pending"
	case VerificationInvalid:
		return "invalid"
	case VerificationVerified:
		return "verified"
	default:
		return "unverified"
	}
}

// Settings is the preference-backed state the service reads and writes: the
// upstream credential, its verification state, and the unit preference.
// Implementations must serialize concurrent access.
type Settings interface {
	APIKey() string
	SetAPIKey(key string)
	VerificationState() VerificationState
	SetVerificationState(state VerificationState)
	Metric() bool
	SetMetric(metric bool)
}
