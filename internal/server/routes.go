package server

import (
	"github.com/rankwise/semgraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.GET("/projects/:id/graph", routes.GetGraphHandler)
	apiRoutes.GET("/projects/:id/metrics", routes.GetMetricsHandler)
	apiRoutes.GET("/projects/:id/recommendations", routes.GetRecommendationsHandler)
	apiRoutes.POST("/projects/:id/recommendations/apply", routes.ApplyRecommendationHandler)

	// Entity routes
	apiRoutes.POST("/projects/:id/entities", routes.CreateEntityHandler)
	apiRoutes.PATCH("/projects/:id/entities/:entity_id", routes.UpdateEntityHandler)
	apiRoutes.DELETE("/projects/:id/entities/:entity_id", routes.DeleteEntityHandler)
	apiRoutes.GET("/projects/:id/entities/:entity_id/jsonld", routes.GetEntityJSONLDHandler)
	apiRoutes.POST("/projects/:id/positions", routes.UpdatePositionsHandler)

	// Relation routes
	apiRoutes.POST("/projects/:id/relations", routes.CreateRelationHandler)
	apiRoutes.DELETE("/projects/:id/relations/:relation_id", routes.DeleteRelationHandler)
	apiRoutes.POST("/projects/:id/connect", routes.ConnectHandler)

	// Template routes
	apiRoutes.GET("/templates", routes.GetTemplatesHandler)
	apiRoutes.POST("/projects/:id/instantiate", routes.InstantiateTemplateHandler)

	// Schema catalog routes
	apiRoutes.GET("/schema/types", routes.GetSchemaTypesHandler)
	apiRoutes.GET("/schema/types/:name", routes.GetSchemaTypeHandler)
}
