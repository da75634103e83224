package routes

import (
	"context"
	"net/http"

	"github.com/rankwise/semgraph/internal/server/middleware"
	"github.com/rankwise/semgraph/pkg/graph"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"
)

func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		ProjectID string `param:"id" validate:"required"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	store, err := projectStore(c, params.ProjectID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, store.Snapshot())
}

// Concurrent metric and recommendation requests for the same project
// coalesce into one computation.
var derivedViews singleflight.Group

func GetMetricsHandler(c echo.Context) error {
	type getMetricsParams struct {
		ProjectID string `param:"id" validate:"required"`
	}

	params := new(getMetricsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := context.WithoutCancel(c.Request().Context())
	metrics, err, _ := derivedViews.Do("metrics:"+params.ProjectID, func() (any, error) {
		store, err := projectStoreContext(ctx, c, params.ProjectID)
		if err != nil {
			return nil, err
		}
		return graph.Analyze(store.Snapshot()), nil
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, metrics)
}

func GetRecommendationsHandler(c echo.Context) error {
	type getRecommendationsParams struct {
		ProjectID string `param:"id" validate:"required"`
	}

	params := new(getRecommendationsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := context.WithoutCancel(c.Request().Context())
	recs, err, _ := derivedViews.Do("recommendations:"+params.ProjectID, func() (any, error) {
		store, err := projectStoreContext(ctx, c, params.ProjectID)
		if err != nil {
			return nil, err
		}
		return graph.Recommend(store.Snapshot(), app.Catalog.Index), nil
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, recs)
}

func ApplyRecommendationHandler(c echo.Context) error {
	type applyRecommendationParams struct {
		ProjectID string `param:"id" validate:"required"`
		Tab       string `json:"tab" validate:"required"`
	}

	params := new(applyRecommendationParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	graph.ApplyAction(c.Request().Context(), app.Notifier, params.ProjectID, graph.Recommendation{Tab: params.Tab})

	return c.NoContent(http.StatusNoContent)
}
