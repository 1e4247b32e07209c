package model

import (
	"gopkg.in/guregu/null.v3"
)

// DaySummary is the complete aggregation output for one user and one calendar date.
type DaySummary struct {
	Date    string          `json:"date"`
	Events  []*DayEvent     `json:"events"`
	Weather *WeatherSummary `json:"weather"`
	Metrics *DayMetrics     `json:"metrics"`
}

// DayMetrics merges the per-day physiological readings with totals derived
// from the day's activities.
type DayMetrics struct {
	Steps            null.Int   `json:"steps"`
	RestingHeartRate null.Int   `json:"restingHeartRate"`
	SleepMinutes     null.Int   `json:"sleepMinutes"`
	CaloriesBurned   null.Float `json:"caloriesBurned"`

	ActivityCount           int     `json:"activityCount"`
	ActivityDistanceMeters  float64 `json:"activityDistanceMeters"`
	ActivityDurationSeconds float64 `json:"activityDurationSeconds"`
	ActivityCalories        float64 `json:"activityCalories"`
}
