package model

import (
	"github.com/uptrace/bun"
)

// DailyMetric is a single whole-day physiological reading. At most one row exists
// per (user, date, kind); kinds are the constant.MetricKind values.
type DailyMetric struct {
	bun.BaseModel `bun:"daily_metrics"`

	MetricID int64   `bun:",pk,autoincrement" json:"-"`
	UserID   string  `json:"-"`
	Date     string  `json:"date"`
	Kind     string  `json:"kind"`
	Value    float64 `json:"value"`
	Provider string  `json:"provider"`
}
