package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/service"
)

// UserHandler handles profile and role transition endpoints.
type UserHandler struct {
	userService    service.UserService
	roleService    service.RoleService
	lendingService service.LendingService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, roleService service.RoleService, lendingService service.LendingService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		roleService:    roleService,
		lendingService: lendingService,
	}
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	NewRole string `json:"newRole" validate:"required"`
}

// MyPetsResponse lists the caller's owned and currently lent pets.
type MyPetsResponse struct {
	Pets     []model.Pet `json:"pets"`
	LentPets []model.Pet `json:"lent_pets"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// MyPets godoc
// @Summary List pets the authenticated user owns and lends
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MyPetsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/pets [get]
func (h *UserHandler) MyPets(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	owned, lent, err := h.lendingService.ListPetsForUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MyPetsResponse{Pets: owned, LentPets: lent})
}

// UpdateRole godoc
// @Summary Switch the authenticated user's role
// @Description Switching to OWNER force-returns every pet the user currently lends, atomically with the role change.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRoleRequest true "New role (OWNER or LENDER)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/updateRole [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return domainError(apperrors.ErrInvalidRole)
	}

	user, err := h.roleService.ChangeRole(c.Request().Context(), userID, req.NewRole)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Role updated successfully",
		"user":    user,
	})
}
