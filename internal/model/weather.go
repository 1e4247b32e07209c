package model

import (
	"github.com/uptrace/bun"
)

// WeatherCache is one persisted historical weather summary, keyed by (date, country).
// Rows are written at-least-once: two concurrent misses may both fetch and upsert,
// but the computed values are identical so the second write is a no-op in effect.
type WeatherCache struct {
	bun.BaseModel `bun:"weather_cache"`

	WeatherID    int64   `bun:",pk,autoincrement"`
	Date         string  `bun:"date"`
	Country      string  `bun:"country"`
	TemperatureC float64 `bun:"temperature_c"`
	Condition    string  `bun:"condition"`
	Icon         string  `bun:"icon"`
}

// WeatherSummary is the presentation shape attached to a day summary.
type WeatherSummary struct {
	TemperatureC float64 `json:"temperatureC"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
	Country      string  `json:"country"`
}
