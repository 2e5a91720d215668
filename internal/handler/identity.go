package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/auth"
	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
)

// currentUserID resolves the authenticated caller's id from the JWT claims
// placed in the context by the auth middleware.
func currentUserID(c echo.Context) (uint, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok || claims == nil || claims.UserID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return claims.UserID, nil
}
