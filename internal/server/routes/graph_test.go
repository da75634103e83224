package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rankwise/semgraph/internal/server/middleware"
	"github.com/rankwise/semgraph/pkg/catalog"
	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/notify"
	"github.com/rankwise/semgraph/pkg/store/memory"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type testValidator struct {
	validator *validator.Validate
}

func (v testValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

// ctxAwareStorage fails like a real database driver when the request
// context is already canceled.
type ctxAwareStorage struct {
	*memory.GraphMemStorage
}

func (s ctxAwareStorage) ListEntities(ctx context.Context, projectID string) ([]common.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.GraphMemStorage.ListEntities(ctx, projectID)
}

func (s ctxAwareStorage) ListRelations(ctx context.Context, projectID string) ([]common.Relation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.GraphMemStorage.ListRelations(ctx, projectID)
}

func newTestContext(t *testing.T, app *middleware.App, target, projectID string) (*middleware.AppContext, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = testValidator{validator: validator.New()}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(projectID)
	return &middleware.AppContext{Context: c, App: app}, rec
}

// A coalesced computation may outlive the request that started it, so
// a caller disconnecting mid-flight must not fail the shared result.
func TestGetMetricsHandlerSurvivesCanceledRequest(t *testing.T) {
	app := &middleware.App{
		Catalog:      catalog.Default(),
		Notifier:     notify.NewMemorySink(),
		GraphStorage: ctxAwareStorage{memory.NewGraphMemStorage()},
	}

	c, rec := newTestContext(t, app, "/api/projects/proj_canceled/metrics", "proj_canceled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.SetRequest(c.Request().WithContext(ctx))

	if err := GetMetricsHandler(c); err != nil {
		t.Fatalf("GetMetricsHandler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite canceled request, got %d: %s", rec.Code, rec.Body)
	}
}

func TestGetRecommendationsHandlerSurvivesCanceledRequest(t *testing.T) {
	app := &middleware.App{
		Catalog:      catalog.Default(),
		Notifier:     notify.NewMemorySink(),
		GraphStorage: ctxAwareStorage{memory.NewGraphMemStorage()},
	}

	c, rec := newTestContext(t, app, "/api/projects/proj_canceled_recs/recommendations", "proj_canceled_recs")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.SetRequest(c.Request().WithContext(ctx))

	if err := GetRecommendationsHandler(c); err != nil {
		t.Fatalf("GetRecommendationsHandler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite canceled request, got %d: %s", rec.Code, rec.Body)
	}
}
