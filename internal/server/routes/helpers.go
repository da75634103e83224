package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/rankwise/semgraph/internal/server/middleware"
	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

// projectStore hydrates the graph store for one project from the
// database. Handlers mutate through it so the confirm-then-apply
// policy holds for every request.
func projectStore(c echo.Context, projectID string) (*graph.Store, error) {
	return projectStoreContext(c.Request().Context(), c, projectID)
}

// projectStoreContext hydrates with an explicit context. Coalesced
// handlers pass a detached context so one disconnecting caller cannot
// cancel the computation the other waiters share.
func projectStoreContext(ctx context.Context, c echo.Context, projectID string) (*graph.Store, error) {
	app := c.(*middleware.AppContext).App
	return graph.NewStore(ctx, graph.StoreParams{
		ProjectID: projectID,
		Storage:   app.GraphStorage,
		Notifier:  app.Notifier,
	})
}

// errorResponse maps the error taxonomy onto HTTP statuses. Partial
// failures are distinguished from total failures so the client can
// tell "nothing happened" from "some of it happened".
func errorResponse(c echo.Context, err error) error {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	}
	var notFound *common.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": notFound.Error()})
	}
	var partial *common.PartialFailure
	if errors.As(err, &partial) {
		return c.JSON(http.StatusMultiStatus, map[string]any{
			"error":     partial.Error(),
			"partial":   true,
			"succeeded": partial.Succeeded,
			"failed":    partial.Failed,
			"step":      partial.Step,
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
