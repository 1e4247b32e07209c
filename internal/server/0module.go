package server

import (
	"go.uber.org/fx"

	"daylog.dev/backend/internal/server/httpserver"
	"daylog.dev/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
