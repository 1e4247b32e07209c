package server

import (
	"github.com/urfave/cli/v2"

	"daylog.dev/backend/internal/app/appcontext"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the daylog API server",
		Action: func(c *cli.Context) error {
			return start(appcontext.Declare(appcontext.EnvServer))
		},
	}
}
