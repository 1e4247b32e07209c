package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"daylog.dev/backend/cmd/app/server"
	"daylog.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "daylog",
		Description: "The daylog backend: merges check-ins, tracker activities, daily metrics and weather into per-day timelines. Built with Go, fiber, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
