package appconfig

import (
	"time"

	"daylog.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address the server would listen on for serving API requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9280"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// HTTPServerShutdownTimeout is how long fiber waits for in-flight requests on shutdown.
	HTTPServerShutdownTimeout time.Duration `split_words:"true" default:"60s"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// WeatherBaseURL is the base URL of the historical weather archive API.
	WeatherBaseURL string `split_words:"true" default:"https://archive-api.open-meteo.com/v1/archive"`

	// WeatherTimeout bounds a single historical weather lookup.
	WeatherTimeout time.Duration `split_words:"true" default:"10s"`

	// StaticMapBaseURL is the base URL used when constructing static map reference URLs
	// attached to day events.
	StaticMapBaseURL string `split_words:"true" default:"https://maps.daylog.dev/static"`

	// DaySummaryCacheTTL is how long computed day summaries are kept in redis.
	// Past days rarely change, but provider backfills do happen, so keep this modest.
	DaySummaryCacheTTL time.Duration `split_words:"true" default:"10m"`
}

type Config struct {
	ConfigSpec

	AppContext appcontext.Ctx
}
