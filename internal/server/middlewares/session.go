package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/server/session"
)

// CurrentUserContextKey is the key to retrieve the current user id from echo.Context.
const CurrentUserContextKey = "current_user"

// Session returns a session gate middleware.
// It reads the token from the session cookie, validates it and stores the
// subject user id into echo.Context. It fails closed before any handler runs;
// handlers still scope every query by the stored id.
func Session(m session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "unauthenticated",
						"message": "Authentication required.",
					},
				})
			}

			claims, err := m.Validate(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-token",
						"message": "Invalid token.",
					},
				})
			}

			c.Set(CurrentUserContextKey, claims.Subject)
			return next(c)
		}
	}
}
