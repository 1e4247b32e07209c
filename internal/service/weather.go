package service

import (
	"context"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"daylog.dev/backend/internal/model"
	"daylog.dev/backend/internal/pkg/observability"
	"daylog.dev/backend/internal/repo"
)

// negativeResultTTL is how long a failed or empty weather lookup suppresses
// further archive requests for the same (date, country).
const negativeResultTTL = 15 * time.Minute

type weatherCacheStore interface {
	Find(ctx context.Context, date, country string) (*model.WeatherCache, error)
	Upsert(ctx context.Context, row *model.WeatherCache) (*model.WeatherCache, error)
}

type Weather struct {
	cache   weatherCacheStore
	fetcher HistoricalFetcher

	// misses memoizes failed lookups in-process so a flaky archive does not get
	// hammered once per page load.
	misses *gocache.Cache
}

func NewWeather(weatherCacheRepo *repo.WeatherCache, fetcher *OpenMeteo) *Weather {
	return &Weather{
		cache:   weatherCacheRepo,
		fetcher: fetcher,
		misses:  gocache.New(negativeResultTTL, 10*time.Minute),
	}
}

// ResolveWeather determines the day's most representative country from the
// checkins, consults the (date, country) cache, and on a miss fetches and
// caches an archive summary. All failures degrade to nil; a day summary
// without weather is preferable to a failed request.
func (s *Weather) ResolveWeather(ctx context.Context, date string, checkins []*model.Checkin) *model.WeatherSummary {
	if len(checkins) == 0 {
		return nil
	}

	countries := lo.FilterMap(checkins, func(c *model.Checkin, _ int) (string, bool) {
		return c.Country.ValueOrZero(), c.Country.ValueOrZero() != ""
	})
	if len(countries) == 0 {
		return nil
	}

	country := mostFrequent(countries)

	row, err := s.cache.Find(ctx, date, country)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Str("country", country).Msg("weather cache lookup failed, treating as miss")
	}
	if row != nil {
		observability.WeatherCacheLookups.WithLabelValues("hit").Inc()
		return summarize(row)
	}
	observability.WeatherCacheLookups.WithLabelValues("miss").Inc()

	missKey := date + "|" + country
	if _, found := s.misses.Get(missKey); found {
		return nil
	}

	// the first checkin's coordinates stand in for the whole day's location
	first := checkins[0]
	hw, err := s.fetcher.FetchHistorical(ctx, first.Latitude, first.Longitude, date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Str("country", country).Msg("historical weather fetch failed")
		s.misses.Set(missKey, struct{}{}, gocache.DefaultExpiration)
		return nil
	}

	condition, icon := describeWeatherCode(hw.WeatherCode)
	row = &model.WeatherCache{
		Date:         date,
		Country:      country,
		TemperatureC: math.Round((hw.TempMaxC + hw.TempMinC) / 2),
		Condition:    condition,
		Icon:         icon,
	}

	if _, err := s.cache.Upsert(ctx, row); err != nil {
		// still return the fetched summary; the next request will retry the write
		log.Error().Err(err).Str("date", date).Str("country", country).Msg("failed to cache weather summary")
	}

	return summarize(row)
}

func summarize(row *model.WeatherCache) *model.WeatherSummary {
	return &model.WeatherSummary{
		TemperatureC: row.TemperatureC,
		Condition:    row.Condition,
		Icon:         row.Icon,
		Country:      row.Country,
	}
}

// mostFrequent returns the mode of values. Ties resolve by whichever candidate
// is encountered first during counting; callers treat that as arbitrary.
func mostFrequent(values []string) string {
	counts := lo.CountValues(values)
	best, bestCount := "", 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// describeWeatherCode maps WMO weather interpretation codes to a short
// condition label and icon token.
func describeWeatherCode(code int) (string, string) {
	switch {
	case code == 0:
		return "Clear", "clear-day"
	case code >= 1 && code <= 3:
		return "Partly cloudy", "cloudy"
	case code == 45 || code == 48:
		return "Fog", "fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "Rain", "rain"
	case code >= 71 && code <= 77 || code == 85 || code == 86:
		return "Snow", "snow"
	case code >= 95:
		return "Thunderstorm", "thunderstorm"
	default:
		return "Unknown", "unknown"
	}
}
