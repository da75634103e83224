package routes

import (
	"net/http"

	"github.com/rankwise/semgraph/internal/queue"
	"github.com/rankwise/semgraph/internal/server/middleware"
	"github.com/rankwise/semgraph/internal/util"

	"github.com/labstack/echo/v4"
)

func GetTemplatesHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	return c.JSON(http.StatusOK, app.Catalog.Templates)
}

// InstantiateTemplateHandler queues a template instantiation job and
// returns immediately. The worker reports completion through the
// notification sink.
func InstantiateTemplateHandler(c echo.Context) error {
	type instantiateParams struct {
		ProjectID    string            `param:"id" validate:"required"`
		TemplateID   string            `json:"template_id" validate:"required"`
		ScopeAnswers map[string]bool   `json:"scope_answers"`
		DataAnswers  map[string]string `json:"data_answers"`
	}

	params := new(instantiateParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	if _, ok := app.Catalog.Template(params.TemplateID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown template"})
	}

	msg := queue.InstantiateMsg{
		JobID:        util.NewJobID(),
		ProjectID:    params.ProjectID,
		TemplateID:   params.TemplateID,
		ScopeAnswers: params.ScopeAnswers,
		DataAnswers:  params.DataAnswers,
	}
	body := util.ConvertStructToJson(msg)
	if err := queue.NewClient(app.Queue).PublishFIFO(c.Request().Context(), queue.InstantiateQueue, body); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{"job_id": msg.JobID})
}
