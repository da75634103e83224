package routes

import (
	"errors"
	"net/http"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

func CreateRelationHandler(c echo.Context) error {
	type createRelationParams struct {
		ProjectID  string   `param:"id" validate:"required"`
		SubjectID  string   `json:"subject_id" validate:"required"`
		ObjectID   string   `json:"object_id" validate:"required"`
		Predicate  string   `json:"predicate" validate:"required"`
		Confidence *float64 `json:"confidence"`
	}

	params := new(createRelationParams)
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

	relation, err := store.CreateRelation(c.Request().Context(), params.SubjectID, params.ObjectID, params.Predicate, params.Confidence)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, relation)
}

func DeleteRelationHandler(c echo.Context) error {
	type deleteRelationParams struct {
		ProjectID  string `param:"id" validate:"required"`
		RelationID string `param:"relation_id" validate:"required"`
	}

	params := new(deleteRelationParams)
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

	if err := store.DeleteRelation(c.Request().Context(), params.RelationID); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConnectHandler performs the drag-to-connect gesture server side.
// With a target_id the source is connected directly; with a drop
// position a companion entity is created first and then connected.
func ConnectHandler(c echo.Context) error {
	type newEntity struct {
		Name        string `json:"name" validate:"required"`
		Type        string `json:"entity_type" validate:"required"`
		SchemaType  string `json:"schema_type"`
		Description string `json:"description"`
	}
	type connectParams struct {
		ProjectID string     `param:"id" validate:"required"`
		SourceID  string     `json:"source_id" validate:"required"`
		Predicate string     `json:"predicate" validate:"required"`
		TargetID  string     `json:"target_id"`
		X         float64    `json:"x"`
		Y         float64    `json:"y"`
		NewEntity *newEntity `json:"new_entity"`
	}

	params := new(connectParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if params.TargetID == "" && params.NewEntity == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Either target_id or new_entity is required"})
	}

	store, err := projectStore(c, params.ProjectID)
	if err != nil {
		return errorResponse(c, err)
	}

	ctx := c.Request().Context()
	connector := graph.NewConnector(store)
	if err := connector.Begin(params.SourceID); err != nil {
		return errorResponse(c, err)
	}

	if params.TargetID != "" {
		if err := connector.ReleaseOnEntity(params.TargetID); err != nil {
			return errorResponse(c, err)
		}
		relation, err := connector.ConfirmConnect(ctx, params.Predicate)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]any{"relation": relation})
	}

	if err := connector.ReleaseOnCanvas(common.Position{X: params.X, Y: params.Y}); err != nil {
		return errorResponse(c, err)
	}
	entity, relation, err := connector.ConfirmCompanion(ctx, params.Predicate, graph.EntityDraft{
		Name:        params.NewEntity.Name,
		Type:        common.EntityType(params.NewEntity.Type),
		SchemaType:  params.NewEntity.SchemaType,
		Description: params.NewEntity.Description,
	})
	if err != nil {
		var partial *common.PartialFailure
		if errors.As(err, &partial) {
			return c.JSON(http.StatusMultiStatus, map[string]any{
				"entity":    entity,
				"error":     partial.Error(),
				"partial":   true,
				"succeeded": partial.Succeeded,
				"failed":    partial.Failed,
				"step":      partial.Step,
			})
		}
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"entity": entity, "relation": relation})
}
