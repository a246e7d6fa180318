package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/server/serializer"
	"github.com/mdouchement/pantry/internal/server/service"
	"github.com/mdouchement/pantry/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db                database.Client
	sessions          session.Manager
	passwordMinLength int
}

///// Signup
////
//

// Signup handler registers the user and opens a session right away.
func (h *auth) Signup(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get signup params."))
	}

	service := service.NewUser(h.db, h.passwordMinLength)
	user, err := service.Register(params)
	if err != nil {
		return err
	}

	token, err := h.sessions.Token(user)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessions.Cookie(token))

	return c.JSON(http.StatusCreated, echo.Map{
		"user": serializer.User(user),
	})
}

///// Login
////
//

// Login authenticates a user and sets the session cookie.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.New("Could not get credentials."))
	}

	service := service.NewUser(h.db, h.passwordMinLength)
	user, err := service.Login(params)
	if err != nil {
		return err
	}

	token, err := h.sessions.Token(user)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessions.Cookie(token))

	return c.JSON(http.StatusOK, echo.Map{
		"user": serializer.User(user),
	})
}
