package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the identity injected by the Auth middleware and
// fast-fails before any service call: both the user id and the email must be
// present, otherwise the middleware did not run or the token carried no
// usable identity.
func ctxPrincipal(c echo.Context) (userID, email string, err error) {
	userID, _ = c.Get("user_id").(string)
	email, _ = c.Get("email").(string)
	if userID == "" || email == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, email, nil
}
