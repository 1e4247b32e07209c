package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"daylog.dev/backend/internal/model"
)

type DailyMetric struct {
	DB *bun.DB
}

func NewDailyMetric(db *bun.DB) *DailyMetric {
	return &DailyMetric{DB: db}
}

// GetDailyMetricsForDay returns the user's per-day readings for date.
// At most one row exists per metric kind.
func (c *DailyMetric) GetDailyMetricsForDay(ctx context.Context, userID, date string) ([]*model.DailyMetric, error) {
	var metrics []*model.DailyMetric
	err := c.DB.NewSelect().
		Model(&metrics).
		Where("user_id = ?", userID).
		Where("date = ?", date).
		Order("kind ASC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return metrics, nil
}
