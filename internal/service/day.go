package service

import (
	"context"
	"fmt"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"daylog.dev/backend/internal/app/appconfig"
	"daylog.dev/backend/internal/constant"
	"daylog.dev/backend/internal/model"
	"daylog.dev/backend/internal/model/cache"
	"daylog.dev/backend/internal/pkg/async"
	"daylog.dev/backend/internal/pkg/dlerr"
	"daylog.dev/backend/internal/pkg/observability"
	"daylog.dev/backend/internal/repo"
	"daylog.dev/backend/internal/util/timeline"
)

type checkinStore interface {
	GetCheckinsForDay(ctx context.Context, userID string, dayStart time.Time) ([]*model.Checkin, error)
}

type activityStore interface {
	GetActivitiesForDay(ctx context.Context, userID, provider string, dayStart time.Time) ([]*model.Activity, error)
}

type dailyMetricStore interface {
	GetDailyMetricsForDay(ctx context.Context, userID, date string) ([]*model.DailyMetric, error)
}

type photoStore interface {
	GetPhotosByCheckinIDs(ctx context.Context, checkinIDs []string) (map[string][]*model.Photo, error)
}

type weatherResolver interface {
	ResolveWeather(ctx context.Context, date string, checkins []*model.Checkin) *model.WeatherSummary
}

type mapRenderer interface {
	MapForPoints(points []model.Coordinates) null.String
	MapForTrack(polyline string) null.String
	MapForTrackWithPoints(polyline string, points []model.Coordinates) null.String
}

type summaryCache interface {
	MutexGetSet(key string, dest interface{}, valueFunc func() (interface{}, error), expire time.Duration) (bool, error)
}

// materializeConcurrency bounds concurrent event materializations; each one
// may issue a photo query.
const materializeConcurrency = 4

// Day aggregates all of a user's data sources for one calendar date into a
// chronological day summary.
type Day struct {
	conf       *appconfig.Config
	checkins   checkinStore
	activities activityStore
	metrics    dailyMetricStore
	photos     photoStore
	weather    weatherResolver
	maps       mapRenderer
	summaries  summaryCache
}

func NewDay(
	conf *appconfig.Config,
	checkinRepo *repo.Checkin,
	activityRepo *repo.Activity,
	metricRepo *repo.DailyMetric,
	photoRepo *repo.Photo,
	weather *Weather,
	staticMap *StaticMap,
) *Day {
	s := &Day{
		conf:       conf,
		checkins:   checkinRepo,
		activities: activityRepo,
		metrics:    metricRepo,
		photos:     photoRepo,
		weather:    weather,
		maps:       staticMap,
	}
	if cache.DaySummaryByUserAndDate != nil {
		s.summaries = cache.DaySummaryByUserAndDate
	}
	return s
}

// Cache: (set) daySummary#userId:date, keyed by user, date and whether weather
// lookup was enabled for the request.
func (s *Day) GetDaySummary(ctx context.Context, userID, date string, coords *model.Coordinates) (*model.DaySummary, error) {
	if userID == "" {
		return nil, dlerr.ErrInvalidReq.Msg("invalid request: missing user id")
	}
	dayStart, err := time.Parse(constant.DateFormat, date)
	if err != nil {
		return nil, dlerr.ErrInvalidReq.Msg("invalid request: malformed date %q", date)
	}

	if s.summaries == nil {
		return s.aggregate(ctx, userID, date, dayStart, coords), nil
	}

	cacheKey := fmt.Sprintf("%s:%s:%t", userID, date, coords != nil)
	var summary model.DaySummary
	_, err = s.summaries.MutexGetSet(cacheKey, &summary, func() (interface{}, error) {
		return *s.aggregate(ctx, userID, date, dayStart, coords), nil
	}, s.conf.DaySummaryCacheTTL)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("day summary cache unavailable, computing directly")
		return s.aggregate(ctx, userID, date, dayStart, coords), nil
	}

	return &summary, nil
}

func (s *Day) aggregate(ctx context.Context, userID, date string, dayStart time.Time, coords *model.Coordinates) *model.DaySummary {
	timer := prometheus.NewTimer(observability.DayAggregateDuration.WithLabelValues())
	defer timer.ObserveDuration()

	var (
		checkins     []*model.Checkin
		strava       []*model.Activity
		garmin       []*model.Activity
		dailyMetrics []*model.DailyMetric
	)

	// all sources are fetched concurrently; each failure is absorbed so a flaky
	// provider degrades its own collection to empty instead of failing the day
	_ = async.WaitAll(
		fetchSource("checkins", func() (err error) {
			checkins, err = s.checkins.GetCheckinsForDay(ctx, userID, dayStart)
			return
		}),
		fetchSource(constant.ProviderStrava, func() (err error) {
			strava, err = s.activities.GetActivitiesForDay(ctx, userID, constant.ProviderStrava, dayStart)
			return
		}),
		fetchSource(constant.ProviderGarmin, func() (err error) {
			garmin, err = s.activities.GetActivitiesForDay(ctx, userID, constant.ProviderGarmin, dayStart)
			return
		}),
		fetchSource("daily_metrics", func() (err error) {
			dailyMetrics, err = s.metrics.GetDailyMetricsForDay(ctx, userID, date)
			return
		}),
	)

	// provider concatenation order doubles as the containment tie-break order
	activities := make([]*model.Activity, 0, len(strava)+len(garmin))
	activities = append(activities, strava...)
	activities = append(activities, garmin...)

	tracked, untracked := timeline.Classify(activities)
	standalone := timeline.AssignCheckins(checkins, tracked)
	sequenced := timeline.Sequence(tracked, untracked, standalone)

	// events materialize concurrently; each index is written exactly once so
	// the chronological order of sequenced is preserved
	events := make([]*model.DayEvent, len(sequenced))
	_, _ = async.Map(lo.Range(len(sequenced)), materializeConcurrency, func(i int) (*model.DayEvent, error) {
		events[i] = s.materialize(ctx, sequenced[i])
		return events[i], nil
	})

	var weather *model.WeatherSummary
	if coords != nil {
		weather = s.weather.ResolveWeather(ctx, date, checkins)
	}

	return &model.DaySummary{
		Date:    date,
		Events:  events,
		Weather: weather,
		Metrics: deriveMetrics(dailyMetrics, activities),
	}
}

func fetchSource(source string, fn func() error) <-chan error {
	return async.Errable(func() error {
		if err := fn(); err != nil {
			observability.SourceFetchFailures.WithLabelValues(source).Inc()
			log.Warn().Err(err).Str("source", source).Msg("data source fetch failed, continuing without it")
		}
		return nil
	})
}

func (s *Day) materialize(ctx context.Context, ev *timeline.Sequenced) *model.DayEvent {
	switch ev.Kind {
	case timeline.KindCheckinGroup:
		points := lo.Map(ev.Group, func(c *model.Checkin, _ int) model.Coordinates {
			return c.Coordinates()
		})
		return &model.DayEvent{
			Kind:      model.DayEventCheckinGroup,
			StartTime: ev.StartTime,
			Checkins:  s.withPhotos(ctx, ev.Group),
			MapURL:    s.maps.MapForPoints(points),
		}

	case timeline.KindTrackedActivity, timeline.KindTrackedActivityWithCheckins:
		kind := model.DayEventTrackedActivity
		var checkins []*model.CheckinWithPhotos
		mapURL := s.maps.MapForTrack(ev.Tracked.Activity.Polyline.ValueOrZero())
		if len(ev.Tracked.Checkins) > 0 {
			kind = model.DayEventTrackedActivityWithCheckins
			checkins = s.withPhotos(ctx, ev.Tracked.Checkins)
			points := lo.Map(ev.Tracked.Checkins, func(c *model.Checkin, _ int) model.Coordinates {
				return c.Coordinates()
			})
			mapURL = s.maps.MapForTrackWithPoints(ev.Tracked.Activity.Polyline.ValueOrZero(), points)
		}
		return &model.DayEvent{
			Kind:      kind,
			StartTime: ev.StartTime,
			Activity:  ev.Tracked.Activity,
			Checkins:  checkins,
			MapURL:    mapURL,
		}

	default:
		return &model.DayEvent{
			Kind:      model.DayEventUntrackedActivity,
			StartTime: ev.StartTime,
			Activity:  ev.Untracked,
		}
	}
}

// withPhotos attaches photos to checkins, batched into one lookup per event.
// A failed lookup leaves the photos empty rather than failing the event.
func (s *Day) withPhotos(ctx context.Context, checkins []*model.Checkin) []*model.CheckinWithPhotos {
	ids := lo.Map(checkins, func(c *model.Checkin, _ int) string {
		return c.CheckinID
	})
	byID, err := s.photos.GetPhotosByCheckinIDs(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Strs("checkinIds", ids).Msg("photo lookup failed, emitting event without photos")
		byID = map[string][]*model.Photo{}
	}

	out := make([]*model.CheckinWithPhotos, 0, len(checkins))
	for _, c := range checkins {
		photos := byID[c.CheckinID]
		if photos == nil {
			photos = []*model.Photo{}
		}
		out = append(out, &model.CheckinWithPhotos{Checkin: c, Photos: photos})
	}
	return out
}

func deriveMetrics(rows []*model.DailyMetric, activities []*model.Activity) *model.DayMetrics {
	byKind := lo.KeyBy(rows, func(m *model.DailyMetric) string {
		return m.Kind
	})

	m := &model.DayMetrics{ActivityCount: len(activities)}
	if r, ok := byKind[constant.MetricKindSteps]; ok {
		m.Steps = null.IntFrom(int64(r.Value))
	}
	if r, ok := byKind[constant.MetricKindRestingHeartRate]; ok {
		m.RestingHeartRate = null.IntFrom(int64(r.Value))
	}
	if r, ok := byKind[constant.MetricKindSleepMinutes]; ok {
		m.SleepMinutes = null.IntFrom(int64(r.Value))
	}
	if r, ok := byKind[constant.MetricKindCaloriesBurned]; ok {
		m.CaloriesBurned = null.FloatFrom(r.Value)
	}

	m.ActivityDistanceMeters = linq.From(activities).SelectT(func(a *model.Activity) float64 {
		return a.DistanceMeters.ValueOrZero()
	}).SumFloats()
	m.ActivityDurationSeconds = linq.From(activities).SelectT(func(a *model.Activity) float64 {
		return float64(a.DurationSeconds.ValueOrZero())
	}).SumFloats()
	m.ActivityCalories = linq.From(activities).SelectT(func(a *model.Activity) float64 {
		return a.Calories.ValueOrZero()
	}).SumFloats()

	return m
}
