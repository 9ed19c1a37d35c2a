package handler

import (
	"net/http" // status codes

	"github.com/labstack/echo/v4" // Echo web framework
)

// UserHandler exposes the authenticated user's own profile.
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// Me handles GET /users/me.  The response is built purely from the verified
// token claims; no database round trip happens here.
func (h *UserHandler) Me(c echo.Context) error {
	sub, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sub":   sub,
		"email": getUserEmail(c),
	})
}
