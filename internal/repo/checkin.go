package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"daylog.dev/backend/internal/model"
)

type Checkin struct {
	DB *bun.DB
}

func NewCheckin(db *bun.DB) *Checkin {
	return &Checkin{DB: db}
}

// GetCheckinsForDay returns the user's checkins whose time falls within the
// 24 hours starting at dayStart, ordered by time ascending.
func (c *Checkin) GetCheckinsForDay(ctx context.Context, userID string, dayStart time.Time) ([]*model.Checkin, error) {
	var checkins []*model.Checkin
	err := c.DB.NewSelect().
		Model(&checkins).
		Where("user_id = ?", userID).
		Where("time >= ?", dayStart).
		Where("time < ?", dayStart.Add(24*time.Hour)).
		Order("time ASC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return checkins, nil
}
