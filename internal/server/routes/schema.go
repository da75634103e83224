package routes

import (
	"net/http"

	"github.com/rankwise/semgraph/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetSchemaTypesHandler lists the type catalog, optionally filtered by
// a search query over name, description and search tag.
func GetSchemaTypesHandler(c echo.Context) error {
	type getSchemaTypesParams struct {
		Query string `query:"q"`
	}

	params := new(getSchemaTypesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	index := c.(*middleware.AppContext).App.Catalog.Index
	if params.Query != "" {
		return c.JSON(http.StatusOK, index.Search(params.Query))
	}
	return c.JSON(http.StatusOK, index.Root())
}

// GetSchemaTypeHandler returns one type with its ancestor chain,
// effective (inherited) properties and descendant count.
func GetSchemaTypeHandler(c echo.Context) error {
	type getSchemaTypeParams struct {
		Name      string `param:"name" validate:"required"`
		Inherited bool   `query:"inherited"`
	}

	params := new(getSchemaTypeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	index := c.(*middleware.AppContext).App.Catalog.Index
	node := index.Find(params.Name)
	if node == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown schema type"})
	}

	ancestors := index.Ancestors(params.Name)
	ancestorNames := make([]string, len(ancestors))
	for i, ancestor := range ancestors {
		ancestorNames[i] = ancestor.Name
	}

	return c.JSON(http.StatusOK, map[string]any{
		"name":             node.Name,
		"description":      node.Description,
		"ancestors":        ancestorNames,
		"properties":       index.Properties(params.Name, params.Inherited),
		"descendant_count": index.DescendantCount(params.Name),
	})
}
