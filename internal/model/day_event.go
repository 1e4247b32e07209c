package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

type DayEventKind string

const (
	DayEventCheckinGroup                DayEventKind = "checkin_group"
	DayEventTrackedActivity             DayEventKind = "tracked_activity"
	DayEventTrackedActivityWithCheckins DayEventKind = "tracked_activity_with_checkins"
	DayEventUntrackedActivity           DayEventKind = "untracked_activity"
)

// DayEvent is one entry of the chronological day timeline. Kind discriminates the
// payload: checkin groups carry Checkins, activity events carry Activity and, for
// tracked activities with contained checkins, both. MapURL is null for untracked
// activities and whenever map reference generation failed for the event.
type DayEvent struct {
	Kind      DayEventKind         `json:"kind"`
	StartTime time.Time            `json:"startTime"`
	Checkins  []*CheckinWithPhotos `json:"checkins,omitempty"`
	Activity  *Activity            `json:"activity,omitempty"`
	MapURL    null.String          `json:"mapUrl"`
}

// CheckinWithPhotos decorates a checkin with its photos for presentation.
type CheckinWithPhotos struct {
	*Checkin
	Photos []*Photo `json:"photos"`
}
