package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Checkin is a single venue visit recorded by the location provider.
type Checkin struct {
	bun.BaseModel `bun:"checkins"`

	CheckinID string      `bun:",pk" json:"id"`
	UserID    string      `json:"-"`
	Time      time.Time   `json:"time"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Country   null.String `json:"country,omitempty"`
	VenueName string      `json:"venueName"`
	Category  string      `json:"category"`
}

func (c *Checkin) Coordinates() Coordinates {
	return Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}
