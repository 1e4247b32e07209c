package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"daylog.dev/backend/internal/model"
)

type Photo struct {
	DB *bun.DB
}

func NewPhoto(db *bun.DB) *Photo {
	return &Photo{DB: db}
}

// GetPhotosByCheckinIDs fetches photos for all given checkins in one query and
// returns them keyed by checkin id. Checkins without photos have no map entry.
func (c *Photo) GetPhotosByCheckinIDs(ctx context.Context, checkinIDs []string) (map[string][]*model.Photo, error) {
	byCheckin := make(map[string][]*model.Photo)
	if len(checkinIDs) == 0 {
		return byCheckin, nil
	}

	var photos []*model.Photo
	err := c.DB.NewSelect().
		Model(&photos).
		Where("checkin_id IN (?)", bun.In(checkinIDs)).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	for _, photo := range photos {
		byCheckin[photo.CheckinID] = append(byCheckin[photo.CheckinID], photo)
	}

	return byCheckin, nil
}
