package routes

import (
	"net/http"

	"github.com/rankwise/semgraph/pkg/common"
	"github.com/rankwise/semgraph/pkg/graph"
	"github.com/rankwise/semgraph/pkg/schema"

	"github.com/labstack/echo/v4"
)

func CreateEntityHandler(c echo.Context) error {
	type createEntityParams struct {
		ProjectID        string            `param:"id" validate:"required"`
		Name             string            `json:"name" validate:"required"`
		Type             string            `json:"entity_type" validate:"required"`
		SchemaType       string            `json:"schema_type"`
		Description      string            `json:"description"`
		SchemaProperties map[string]string `json:"schema_properties"`
		X                float64           `json:"x"`
		Y                float64           `json:"y"`
	}

	params := new(createEntityParams)
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

	entity, err := store.CreateEntity(c.Request().Context(), graph.EntityDraft{
		Name:             params.Name,
		Type:             common.EntityType(params.Type),
		SchemaType:       params.SchemaType,
		Description:      params.Description,
		SchemaProperties: params.SchemaProperties,
		Position:         common.Position{X: params.X, Y: params.Y},
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, entity)
}

func UpdateEntityHandler(c echo.Context) error {
	type updateEntityParams struct {
		ProjectID        string            `param:"id" validate:"required"`
		EntityID         string            `param:"entity_id" validate:"required"`
		Name             *string           `json:"name"`
		Type             *string           `json:"entity_type"`
		SchemaType       *string           `json:"schema_type"`
		Description      *string           `json:"description"`
		SchemaProperties map[string]string `json:"schema_properties"`
	}

	params := new(updateEntityParams)
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

	patch := graph.EntityPatch{
		Name:             params.Name,
		SchemaType:       params.SchemaType,
		Description:      params.Description,
		SchemaProperties: params.SchemaProperties,
	}
	if params.Type != nil {
		entityType := common.EntityType(*params.Type)
		patch.Type = &entityType
	}

	entity, err := store.UpdateEntity(c.Request().Context(), params.EntityID, patch)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, entity)
}

func DeleteEntityHandler(c echo.Context) error {
	type deleteEntityParams struct {
		ProjectID string `param:"id" validate:"required"`
		EntityID  string `param:"entity_id" validate:"required"`
	}

	params := new(deleteEntityParams)
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

	if err := store.DeleteEntity(c.Request().Context(), params.EntityID); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func GetEntityJSONLDHandler(c echo.Context) error {
	type getJSONLDParams struct {
		ProjectID string `param:"id" validate:"required"`
		EntityID  string `param:"entity_id" validate:"required"`
	}

	params := new(getJSONLDParams)
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

	entity, ok := store.Entity(params.EntityID)
	if !ok {
		return errorResponse(c, &common.NotFoundError{Kind: "entity", ID: params.EntityID})
	}

	doc := schema.JSONLD(entity)
	if doc == nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "Entity has no schema type"})
	}

	return c.JSON(http.StatusOK, doc)
}

func UpdatePositionsHandler(c echo.Context) error {
	type positionUpdate struct {
		EntityID string  `json:"entity_id" validate:"required"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}
	type updatePositionsParams struct {
		ProjectID string           `param:"id" validate:"required"`
		Positions []positionUpdate `json:"positions" validate:"required,dive"`
	}

	params := new(updatePositionsParams)
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

	updates := make([]common.PositionUpdate, len(params.Positions))
	for i, p := range params.Positions {
		updates[i] = common.PositionUpdate{
			EntityID: p.EntityID,
			Position: common.Position{X: p.X, Y: p.Y},
		}
	}
	if err := store.UpdatePositions(c.Request().Context(), updates); err != nil {
		return errorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
