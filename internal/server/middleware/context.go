package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/rankwise/semgraph/pkg/catalog"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/store"
)

// App bundles the shared clients every request handler needs.
type App struct {
	DBConn       *pgxpool.Pool
	Queue        *amqp091.Channel
	Catalog      *catalog.Catalog
	Notifier     notify.Sink
	GraphStorage store.GraphStorage
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
