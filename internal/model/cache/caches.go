package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"

	"daylog.dev/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// DaySummaryByUserAndDate caches fully materialized day summaries,
	// keyed `userId:date`.
	DaySummaryByUserAndDate *cache.Set

	once sync.Once

	SetMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

func initializeCaches(client *redis.Client) {
	SetMap = make(map[string]Flusher)

	// day summary
	DaySummaryByUserAndDate = cache.NewSet(client, "daySummary#userId:date")
	SetMap["daySummary#userId:date"] = DaySummaryByUserAndDate.Clear

	// weather rows live in postgres (repo.WeatherCache); they are not flushed from here.
}

func Delete(name string) error {
	if flush, ok := SetMap[name]; ok {
		return flush()
	}
	return nil
}
