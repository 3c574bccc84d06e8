package weather

// conditionByID maps OpenWeatherMap numeric condition ids onto canonical
// codes. The table is an arbitrary mapping inherited from the provider's
// vocabulary and is enumerated in full; it must not be approximated.
var conditionByID = map[int]Condition{
	// Group 2xx: thunderstorm
	200: ConditionIsolatedThunder,
	201: ConditionScatteredThunder,
	202: ConditionThunderstorms,
	210: ConditionIsolatedThunder,
	211: ConditionThunderstorms,
	212: ConditionHurricane,
	221: ConditionScatteredThunder,
	230: ConditionIsolatedThunder,
	231: ConditionScatteredThunder,
	232: ConditionThunderstorms,

	// Group 3xx: drizzle
	300: ConditionDrizzle,
	301: ConditionDrizzle,
	302: ConditionDrizzle,
	310: ConditionDrizzle,
	311: ConditionDrizzle,
	312: ConditionDrizzle,
	313: ConditionDrizzle,
	314: ConditionDrizzle,
	321: ConditionDrizzle,

	// Group 5xx: rain
	500: ConditionShowers,
	501: ConditionShowers,
	502: ConditionShowers,
	503: ConditionShowers,
	504: ConditionShowers,
	511: ConditionFreezingRain,
	520: ConditionShowers,
	521: ConditionShowers,
	522: ConditionShowers,
	531: ConditionShowers,

	// Group 6xx: snow
	600: ConditionLightSnowShowers,
	601: ConditionSnow,
	602: ConditionHeavySnow,
	611: ConditionSleet,
	612: ConditionSleet,
	615: ConditionMixedRainAndSnow,
	616: ConditionMixedRainAndSnow,
	620: ConditionLightSnowShowers,
	621: ConditionSnow,
	622: ConditionHeavySnow,

	// Group 7xx: atmosphere
	701: ConditionHaze,
	711: ConditionSmoky,
	721: ConditionHaze,
	731: ConditionDust,
	741: ConditionFoggy,
	751: ConditionDust,
	761: ConditionDust,
	762: ConditionSmoky,
	771: ConditionBlustery,
	781: ConditionTornado,

	// Group 9xx: extreme (legacy)
	900: ConditionTornado,
	901: ConditionTropicalStorm,
	902: ConditionHurricane,
	903: ConditionCold,
	904: ConditionHot,
	905: ConditionWindy,
	906: ConditionHail,
}

// conditionByIcon is the fallback table keyed by the provider's icon token,
// consulted only when the numeric id has no entry.
var conditionByIcon = map[string]Condition{
	"01d": ConditionSunny,
	"01n": ConditionClearNight,
	"02d": ConditionPartlyCloudyDay,
	"02n": ConditionPartlyCloudyNight,
	"03d": ConditionCloudy,
	"03n": ConditionCloudy,
	"04d": ConditionMostlyCloudyDay,
	"04n": ConditionMostlyCloudyNight,
	"09d": ConditionShowers,
	"09n": ConditionShowers,
	"10d": ConditionScatteredShowers,
	"10n": ConditionThundershower,
	"11d": ConditionThunderstorms,
	"11n": ConditionThunderstorms,
	"13d": ConditionSnow,
	"13n": ConditionSnow,
	"50d": ConditionHaze,
	"50n": ConditionFoggy,
}

// MapCondition resolves a provider condition id and icon token to a canonical
// condition. The id table wins; the icon table is the fallback; unknown input
// maps to ConditionNotAvailable.
func MapCondition(id int, icon string) Condition {
	if c, ok := conditionByID[id]; ok {
		return c
	}
	if c, ok := conditionByIcon[icon]; ok {
		return c
	}
	return ConditionNotAvailable
}
