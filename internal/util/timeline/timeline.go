// Package timeline implements the pure half of day aggregation: partitioning
// activities by whether they carry track geometry, containing checkins inside
// tracked-activity intervals, and merging everything into one ordered event
// sequence with consecutive standalone checkins grouped together.
package timeline

import (
	"sort"
	"time"

	"daylog.dev/backend/internal/model"
)

// TrackedActivity pairs an activity carrying track geometry with the checkins
// contained in its time interval. The interval is closed: a checkin at either
// boundary belongs to the activity.
type TrackedActivity struct {
	Activity *model.Activity
	Checkins []*model.Checkin
}

func (t *TrackedActivity) contains(at time.Time) bool {
	return !at.Before(t.Activity.StartTime) && !at.After(t.Activity.EndTime())
}

// Classify partitions activities into tracked (non-empty track geometry, and
// therefore a meaningful interval) and untracked (instantaneous point events).
// Input order is preserved within both partitions.
func Classify(activities []*model.Activity) ([]*TrackedActivity, []*model.Activity) {
	tracked := make([]*TrackedActivity, 0, len(activities))
	untracked := make([]*model.Activity, 0, len(activities))
	for _, activity := range activities {
		if activity.HasTrack() {
			tracked = append(tracked, &TrackedActivity{
				Activity: activity,
				Checkins: []*model.Checkin{},
			})
		} else {
			untracked = append(untracked, activity)
		}
	}
	return tracked, untracked
}

// AssignCheckins walks checkins in input order and attaches each to the first
// tracked activity whose interval contains its time; the rest are returned as
// standalone. First-match is deliberate: overlapping intervals resolve by the
// tracked slice's order, which follows provider concatenation order upstream.
func AssignCheckins(checkins []*model.Checkin, tracked []*TrackedActivity) []*model.Checkin {
	standalone := make([]*model.Checkin, 0, len(checkins))
	for _, checkin := range checkins {
		matched := false
		for _, t := range tracked {
			if t.contains(checkin.Time) {
				t.Checkins = append(t.Checkins, checkin)
				matched = true
				break
			}
		}
		if !matched {
			standalone = append(standalone, checkin)
		}
	}
	return standalone
}

type Kind int

const (
	KindCheckinGroup Kind = iota
	KindTrackedActivity
	KindTrackedActivityWithCheckins
	KindUntrackedActivity
)

// Sequenced is one not-yet-materialized timeline event. Exactly one of Group,
// Tracked or Untracked is set, per Kind.
type Sequenced struct {
	Kind      Kind
	StartTime time.Time
	Group     []*model.Checkin
	Tracked   *TrackedActivity
	Untracked *model.Activity
}

// sortPriority is the explicit secondary sort key applied on identical
// timestamps: activities with intervals sort before point activities, which
// sort before checkins. This pins down what would otherwise be an accidental
// artifact of concatenation order under a stable sort.
const (
	priorityTracked = iota
	priorityUntracked
	priorityCheckin
)

type entry struct {
	startTime time.Time
	priority  int

	tracked   *TrackedActivity
	untracked *model.Activity
	checkin   *model.Checkin
}

// Sequence merges tracked activities, untracked activities and standalone
// checkins into a single event list ordered by start time. Consecutive
// checkins accumulate into one group; any activity entry flushes the pending
// group before being emitted, so groups never span an activity.
func Sequence(tracked []*TrackedActivity, untracked []*model.Activity, standalone []*model.Checkin) []*Sequenced {
	entries := make([]*entry, 0, len(tracked)+len(untracked)+len(standalone))
	for _, t := range tracked {
		entries = append(entries, &entry{startTime: t.Activity.StartTime, priority: priorityTracked, tracked: t})
	}
	for _, u := range untracked {
		entries = append(entries, &entry{startTime: u.StartTime, priority: priorityUntracked, untracked: u})
	}
	for _, c := range standalone {
		entries = append(entries, &entry{startTime: c.Time, priority: priorityCheckin, checkin: c})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].startTime.Equal(entries[j].startTime) {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].startTime.Before(entries[j].startTime)
	})

	events := make([]*Sequenced, 0, len(entries))
	var pendingGroup []*model.Checkin

	flush := func() {
		if len(pendingGroup) == 0 {
			return
		}
		events = append(events, &Sequenced{
			Kind:      KindCheckinGroup,
			StartTime: pendingGroup[0].Time,
			Group:     pendingGroup,
		})
		pendingGroup = nil
	}

	for _, e := range entries {
		switch {
		case e.checkin != nil:
			pendingGroup = append(pendingGroup, e.checkin)
		case e.tracked != nil:
			flush()
			kind := KindTrackedActivity
			if len(e.tracked.Checkins) > 0 {
				kind = KindTrackedActivityWithCheckins
			}
			events = append(events, &Sequenced{
				Kind:      kind,
				StartTime: e.tracked.Activity.StartTime,
				Tracked:   e.tracked,
			})
		default:
			flush()
			events = append(events, &Sequenced{
				Kind:      KindUntrackedActivity,
				StartTime: e.untracked.StartTime,
				Untracked: e.untracked,
			})
		}
	}
	flush()

	return events
}
