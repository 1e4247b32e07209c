package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"daylog.dev/backend/internal/app/appconfig"
)

// HistoricalWeather is one day's worth of archive readings for a location.
type HistoricalWeather struct {
	TempMaxC    float64
	TempMinC    float64
	WeatherCode int
}

// HistoricalFetcher is the weather archive collaborator consumed by the resolver.
type HistoricalFetcher interface {
	FetchHistorical(ctx context.Context, lat, lon float64, date string) (*HistoricalWeather, error)
}

// OpenMeteo fetches historical daily weather from the Open-Meteo archive API.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ HistoricalFetcher = (*OpenMeteo)(nil)

func NewOpenMeteo(conf *appconfig.Config) *OpenMeteo {
	return &OpenMeteo{
		baseURL: conf.WeatherBaseURL,
		client: &http.Client{
			Timeout: conf.WeatherTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

func (p *OpenMeteo) FetchHistorical(ctx context.Context, lat, lon float64, date string) (*HistoricalWeather, error) {
	var result *HistoricalWeather
	err := retry.Do(func() error {
		r, err := p.breaker.Execute(func() (interface{}, error) {
			return p.fetch(ctx, lat, lon, date)
		})
		if err != nil {
			return err
		}
		result = r.(*HistoricalWeather)
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *OpenMeteo) fetch(ctx context.Context, lat, lon float64, date string) (*HistoricalWeather, error) {
	v := url.Values{}
	v.Set("latitude", fmt.Sprintf("%f", lat))
	v.Set("longitude", fmt.Sprintf("%f", lon))
	v.Set("start_date", date)
	v.Set("end_date", date)
	v.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	v.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("weather archive responded with status %d", resp.StatusCode)
	}

	var payload struct {
		Daily struct {
			TemperatureMax []float64 `json:"temperature_2m_max"`
			TemperatureMin []float64 `json:"temperature_2m_min"`
			WeatherCode    []int     `json:"weathercode"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if len(payload.Daily.TemperatureMax) == 0 || len(payload.Daily.TemperatureMin) == 0 {
		return nil, errors.New("weather archive returned no data for date")
	}

	hw := &HistoricalWeather{
		TempMaxC: payload.Daily.TemperatureMax[0],
		TempMinC: payload.Daily.TemperatureMin[0],
	}
	if len(payload.Daily.WeatherCode) > 0 {
		hw.WeatherCode = payload.Daily.WeatherCode[0]
	}
	return hw, nil
}
