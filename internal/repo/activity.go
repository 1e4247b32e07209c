package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"daylog.dev/backend/internal/model"
)

type Activity struct {
	DB *bun.DB
}

func NewActivity(db *bun.DB) *Activity {
	return &Activity{DB: db}
}

// GetActivitiesForDay returns one provider's activities starting within the
// 24 hours from dayStart, ordered by start_time ascending.
func (c *Activity) GetActivitiesForDay(ctx context.Context, userID, provider string, dayStart time.Time) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := c.DB.NewSelect().
		Model(&activities).
		Where("user_id = ?", userID).
		Where("provider = ?", provider).
		Where("start_time >= ?", dayStart).
		Where("start_time < ?", dayStart.Add(24*time.Hour)).
		Order("start_time ASC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return activities, nil
}
