package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Activity is one tracker-recorded workout. Provider is one of the constant.Provider values;
// records for both providers live in the same table and are distinguished by that column.
type Activity struct {
	bun.BaseModel `bun:"activities"`

	ActivityID      string      `bun:",pk" json:"id"`
	UserID          string      `json:"-"`
	Provider        string      `json:"provider"`
	StartTime       time.Time   `json:"startTime"`
	DurationSeconds null.Int    `json:"durationSeconds,omitempty"`
	Polyline        null.String `json:"-"`
	Type            string      `json:"type"`
	Name            string      `json:"name"`
	DistanceMeters  null.Float  `json:"distanceMeters,omitempty"`
	Calories        null.Float  `json:"calories,omitempty"`
	AvgHeartRate    null.Float  `json:"avgHeartRate,omitempty"`
}

// HasTrack reports whether the activity carries GPS track geometry, which is
// what qualifies it for a meaningful time interval on the day timeline.
func (a *Activity) HasTrack() bool {
	return a.Polyline.Valid && a.Polyline.String != ""
}

// EndTime derives the end of the activity interval. A missing duration
// degenerates to a zero-width interval at StartTime.
func (a *Activity) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationSeconds.ValueOrZero()) * time.Second)
}
