package constant

const (
	ProviderStrava = "strava"
	ProviderGarmin = "garmin"
)

const (
	MetricKindSteps            = "steps"
	MetricKindRestingHeartRate = "resting_heart_rate"
	MetricKindSleepMinutes     = "sleep_minutes"
	MetricKindCaloriesBurned   = "calories_burned"
)
