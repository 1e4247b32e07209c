package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Photo is an image attached to a checkin.
type Photo struct {
	bun.BaseModel `bun:"photos"`

	PhotoID   string    `bun:",pk" json:"id"`
	CheckinID string    `json:"-"`
	URL       string    `json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}
