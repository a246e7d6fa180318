package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/recipes"
	"github.com/pkg/errors"
)

// recipe contains the recipe suggestion handler.
type recipe struct {
	generator recipes.Client
}

// RecipeParams are used to request recipe suggestions.
type RecipeParams struct {
	Inventory   []string `json:"inventory"`
	SearchQuery string   `json:"searchQuery"`
}

///// Generate
////
//

// Generate passes the inventory through to the completion API and renders the
// suggested recipes. Upstream failures surface as opaque server errors.
func (h *recipe) Generate(c echo.Context) error {
	// Filter params
	var params RecipeParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get recipe params."))
	}

	if len(params.Inventory) == 0 {
		return c.JSON(http.StatusBadRequest,
			apierror.NewWithTagCode(http.StatusBadRequest, "validation", "No inventory provided."))
	}

	suggestions, err := h.generator.Generate(c.Request().Context(), params.Inventory, params.SearchQuery)
	if err != nil {
		return errors.Wrap(err, "could not generate recipes")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"recipes": suggestions,
	})
}
