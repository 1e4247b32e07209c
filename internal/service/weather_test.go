package service

import (
	"context"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"daylog.dev/backend/internal/model"
)

type fakeWeatherCacheStore struct {
	rows      map[string]*model.WeatherCache
	findErr   error
	upsertErr error
	upserts   int
}

func (f *fakeWeatherCacheStore) Find(_ context.Context, date, country string) (*model.WeatherCache, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.rows[date+"|"+country], nil
}

func (f *fakeWeatherCacheStore) Upsert(_ context.Context, row *model.WeatherCache) (*model.WeatherCache, error) {
	f.upserts++
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.rows == nil {
		f.rows = map[string]*model.WeatherCache{}
	}
	f.rows[row.Date+"|"+row.Country] = row
	return row, nil
}

type fakeFetcher struct {
	result *HistoricalWeather
	err    error
	calls  int
	lat    float64
	lon    float64
}

func (f *fakeFetcher) FetchHistorical(_ context.Context, lat, lon float64, _ string) (*HistoricalWeather, error) {
	f.calls++
	f.lat, f.lon = lat, lon
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestWeather(store *fakeWeatherCacheStore, fetcher *fakeFetcher) *Weather {
	return &Weather{
		cache:   store,
		fetcher: fetcher,
		misses:  gocache.New(time.Minute, time.Minute),
	}
}

func countryCheckin(country string, lat, lon float64) *model.Checkin {
	c := &model.Checkin{Latitude: lat, Longitude: lon}
	if country != "" {
		c.Country = null.StringFrom(country)
	}
	return c
}

func TestResolveWeather(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	date := "2023-06-15"

	t.Run("NoCheckins", func(t *testing.T) {
		t.Parallel()
		s := newTestWeather(&fakeWeatherCacheStore{}, &fakeFetcher{})
		assert.Nil(t, s.ResolveWeather(ctx, date, nil))
	})

	t.Run("NoCountries", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{}
		s := newTestWeather(&fakeWeatherCacheStore{}, fetcher)
		got := s.ResolveWeather(ctx, date, []*model.Checkin{
			countryCheckin("", 1, 2),
			countryCheckin("", 3, 4),
		})
		assert.Nil(t, got)
		assert.Zero(t, fetcher.calls)
	})

	t.Run("CacheHit", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{rows: map[string]*model.WeatherCache{
			date + "|JP": {Date: date, Country: "JP", TemperatureC: 21, Condition: "Clear", Icon: "clear-day"},
		}}
		fetcher := &fakeFetcher{}
		s := newTestWeather(store, fetcher)

		got := s.ResolveWeather(ctx, date, []*model.Checkin{countryCheckin("JP", 35.68, 139.69)})
		require.NotNil(t, got)
		assert.Equal(t, "JP", got.Country)
		assert.Equal(t, float64(21), got.TemperatureC)
		assert.Equal(t, "Clear", got.Condition)
		assert.Zero(t, fetcher.calls, "cache hit must not reach the archive")
	})

	t.Run("CacheMissFetchesAndUpserts", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{}
		fetcher := &fakeFetcher{result: &HistoricalWeather{TempMaxC: 24.6, TempMinC: 16.1, WeatherCode: 61}}
		s := newTestWeather(store, fetcher)

		got := s.ResolveWeather(ctx, date, []*model.Checkin{
			countryCheckin("FR", 48.85, 2.35),
			countryCheckin("FR", 48.86, 2.34),
		})
		require.NotNil(t, got)
		// round((24.6+16.1)/2) = round(20.35) = 20
		assert.Equal(t, float64(20), got.TemperatureC)
		assert.Equal(t, "Rain", got.Condition)
		assert.Equal(t, "rain", got.Icon)
		assert.Equal(t, "FR", got.Country)

		assert.Equal(t, 1, fetcher.calls)
		assert.Equal(t, 48.85, fetcher.lat, "fetch uses the first checkin's coordinates")
		assert.Equal(t, 2.35, fetcher.lon)
		assert.Equal(t, 1, store.upserts)
	})

	t.Run("CountryMode", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{}
		fetcher := &fakeFetcher{result: &HistoricalWeather{TempMaxC: 10, TempMinC: 4, WeatherCode: 0}}
		s := newTestWeather(store, fetcher)

		got := s.ResolveWeather(ctx, date, []*model.Checkin{
			countryCheckin("US", 40.7, -74.0),
			countryCheckin("CA", 45.5, -73.6),
			countryCheckin("CA", 45.51, -73.57),
		})
		require.NotNil(t, got)
		assert.Equal(t, "CA", got.Country)
	})

	t.Run("FetchFailureReturnsNilAndMemoizes", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{}
		fetcher := &fakeFetcher{err: errors.New("archive down")}
		s := newTestWeather(store, fetcher)

		checkins := []*model.Checkin{countryCheckin("DE", 52.52, 13.4)}
		assert.Nil(t, s.ResolveWeather(ctx, date, checkins))
		assert.Nil(t, s.ResolveWeather(ctx, date, checkins))
		assert.Equal(t, 1, fetcher.calls, "second lookup must be suppressed by the negative memo")
		assert.Zero(t, store.upserts)
	})

	t.Run("FindFailureTreatedAsMiss", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{findErr: errors.New("db down")}
		fetcher := &fakeFetcher{result: &HistoricalWeather{TempMaxC: 30, TempMinC: 20, WeatherCode: 95}}
		s := newTestWeather(store, fetcher)

		got := s.ResolveWeather(ctx, date, []*model.Checkin{countryCheckin("TH", 13.75, 100.5)})
		require.NotNil(t, got)
		assert.Equal(t, "Thunderstorm", got.Condition)
		assert.Equal(t, 1, fetcher.calls)
	})

	t.Run("UpsertFailureStillReturnsSummary", func(t *testing.T) {
		t.Parallel()
		store := &fakeWeatherCacheStore{upsertErr: errors.New("db down")}
		fetcher := &fakeFetcher{result: &HistoricalWeather{TempMaxC: -2, TempMinC: -8, WeatherCode: 73}}
		s := newTestWeather(store, fetcher)

		got := s.ResolveWeather(ctx, date, []*model.Checkin{countryCheckin("NO", 59.91, 10.75)})
		require.NotNil(t, got)
		assert.Equal(t, float64(-5), got.TemperatureC)
		assert.Equal(t, "Snow", got.Condition)
	})
}

func TestMostFrequent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "b", mostFrequent([]string{"a", "b", "b"}))
	assert.Equal(t, "a", mostFrequent([]string{"a", "b"}), "tie resolves to the first encountered")
	assert.Equal(t, "x", mostFrequent([]string{"x"}))
}

func TestDescribeWeatherCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code      int
		condition string
		icon      string
	}{
		{0, "Clear", "clear-day"},
		{2, "Partly cloudy", "cloudy"},
		{45, "Fog", "fog"},
		{55, "Rain", "rain"},
		{81, "Rain", "rain"},
		{71, "Snow", "snow"},
		{86, "Snow", "snow"},
		{96, "Thunderstorm", "thunderstorm"},
		{40, "Unknown", "unknown"},
	}
	for _, c := range cases {
		condition, icon := describeWeatherCode(c.code)
		assert.Equal(t, c.condition, condition, "code %d", c.code)
		assert.Equal(t, c.icon, icon, "code %d", c.code)
	}
}
