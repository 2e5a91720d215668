package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/service"
)

// PetHandler handles pet registration and lending endpoints.
type PetHandler struct {
	lendingService service.LendingService
}

// NewPetHandler creates a new pet handler.
func NewPetHandler(lendingService service.LendingService) *PetHandler {
	return &PetHandler{lendingService: lendingService}
}

// RegisterPetRequest represents a pet registration request.
type RegisterPetRequest struct {
	Name  string `json:"name" validate:"required"`
	Breed string `json:"breed" validate:"required"`
	Age   int    `json:"age" validate:"gte=0"`
}

// PetResponse wraps a pet mutation result.
type PetResponse struct {
	Message string      `json:"message"`
	Pet     interface{} `json:"pet"`
}

func petIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidPetID
	}
	return uint(id), nil
}

func domainError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// RegisterPet godoc
// @Summary Register a new pet
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterPetRequest true "Pet data"
// @Success 201 {object} PetResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /pets [post]
func (h *PetHandler) RegisterPet(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	var req RegisterPetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return domainError(apperrors.ErrInvalidPetData)
	}

	pet, err := h.lendingService.RegisterPet(c.Request().Context(), userID, req.Name, req.Breed, req.Age)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, PetResponse{
		Message: "Pet added successfully",
		Pet:     pet,
	})
}

// ListAvailablePets godoc
// @Summary List all available pets
// @Tags pets
// @Produce json
// @Success 200 {array} model.Pet
// @Router /pets [get]
func (h *PetHandler) ListAvailablePets(c echo.Context) error {
	pets, err := h.lendingService.ListAvailablePets(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, pets)
}

// LendPet godoc
// @Summary Lend an available pet to the calling lender
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} PetResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /pets/{id}/lend [post]
func (h *PetHandler) LendPet(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	petID, err := petIDParam(c)
	if err != nil {
		return domainError(err)
	}

	pet, err := h.lendingService.LendPet(c.Request().Context(), userID, petID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, PetResponse{
		Message: "Pet lent successfully",
		Pet:     pet,
	})
}

// ReturnPet godoc
// @Summary Return a lent pet
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} PetResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /pets/{id}/return [post]
func (h *PetHandler) ReturnPet(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return domainError(err)
	}

	petID, err := petIDParam(c)
	if err != nil {
		return domainError(err)
	}

	pet, err := h.lendingService.ReturnPet(c.Request().Context(), userID, petID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, PetResponse{
		Message: "Pet returned successfully",
		Pet:     pet,
	})
}
