package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/server/serializer"
	"github.com/mdouchement/pantry/internal/server/service"
)

// item contains all item handlers.
// Every operation is scoped by the session subject stored by the gate.
type item struct {
	db database.Client
}

///// List
////
//

// List renders all the items owned by the current user.
func (h *item) List(c echo.Context) error {
	items, err := service.NewItem(h.db).List(currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": serializer.Items(items),
	})
}

///// Create
////
//

// Create adds an item to the current user's pantry.
// The owner is always the session subject, a client-supplied owner is ignored.
func (h *item) Create(c echo.Context) error {
	// Filter params
	var params service.ItemParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get item params."))
	}

	item, err := service.NewItem(h.db).Create(currentUserID(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"item": serializer.Item(item),
	})
}

///// Get
////
//

// Get renders a single item of the current user.
func (h *item) Get(c echo.Context) error {
	item, err := service.NewItem(h.db).Find(currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"item": serializer.Item(item),
	})
}

///// Update
////
//

// Update replaces the editable fields of an item of the current user.
func (h *item) Update(c echo.Context) error {
	// Filter params
	var params service.ItemParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get item params."))
	}

	item, err := service.NewItem(h.db).Update(currentUserID(c), c.Param("id"), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"item": serializer.Item(item),
	})
}

///// Delete
////
//

// Delete removes an item of the current user.
func (h *item) Delete(c echo.Context) error {
	if err := service.NewItem(h.db).Delete(currentUserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item successfully deleted.",
	})
}
