package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"daylog.dev/backend/internal/model"
)

type WeatherCache struct {
	DB *bun.DB
}

func NewWeatherCache(db *bun.DB) *WeatherCache {
	return &WeatherCache{DB: db}
}

// Find returns the cached weather row for (date, country), or nil when absent.
func (c *WeatherCache) Find(ctx context.Context, date, country string) (*model.WeatherCache, error) {
	var row model.WeatherCache
	err := c.DB.NewSelect().
		Model(&row).
		Where("date = ?", date).
		Where("country = ?", country).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// Upsert writes the weather row keyed by (date, country). The write is
// at-least-once rather than part of any larger transaction: concurrent misses
// for the same key produce identical values, so last-write-wins is harmless.
func (c *WeatherCache) Upsert(ctx context.Context, row *model.WeatherCache) (*model.WeatherCache, error) {
	_, err := c.DB.NewInsert().
		Model(row).
		On("CONFLICT (date, country) DO UPDATE").
		Set("temperature_c = EXCLUDED.temperature_c").
		Set("condition = EXCLUDED.condition").
		Set("icon = EXCLUDED.icon").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return row, nil
}
