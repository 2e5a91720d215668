package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/auth"
	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
)

// MockLendingService is a mock implementation of service.LendingService.
type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) RegisterPet(ctx context.Context, ownerID uint, name, breed string, age int) (*model.Pet, error) {
	args := m.Called(ctx, ownerID, name, breed, age)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockLendingService) LendPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error) {
	args := m.Called(ctx, actingUserID, petID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockLendingService) ReturnPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error) {
	args := m.Called(ctx, actingUserID, petID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockLendingService) ListAvailablePets(ctx context.Context) ([]model.Pet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockLendingService) ListPetsForUser(ctx context.Context, userID uint) ([]model.Pet, []model.Pet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]model.Pet), args.Get(1).([]model.Pet), args.Error(2)
}

func lendRequest(t *testing.T, petID string, claims *auth.Claims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/pets/"+petID+"/lend", strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/pets/:id/lend")
	c.SetParamNames("id")
	c.SetParamValues(petID)
	if claims != nil {
		c.Set("user", claims)
	}
	return c, rec
}

func TestPetHandler_LendPet_InvalidID(t *testing.T) {
	svc := new(MockLendingService)
	h := NewPetHandler(svc)

	for _, raw := range []string{"abc", "0", "-4", ""} {
		c, _ := lendRequest(t, raw, &auth.Claims{UserID: 2, Role: model.RoleLender})

		err := h.LendPet(c)
		if assert.Error(t, err, "pet id %q", raw) {
			httpErr, ok := err.(*echo.HTTPError)
			if assert.True(t, ok) {
				assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			}
		}
	}
	svc.AssertNotCalled(t, "LendPet", mock.Anything, mock.Anything, mock.Anything)
}

func TestPetHandler_LendPet_Unauthenticated(t *testing.T) {
	svc := new(MockLendingService)
	h := NewPetHandler(svc)

	c, _ := lendRequest(t, "1", nil)
	err := h.LendPet(c)
	if assert.Error(t, err) {
		httpErr := err.(*echo.HTTPError)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
	svc.AssertNotCalled(t, "LendPet", mock.Anything, mock.Anything, mock.Anything)
}

func TestPetHandler_LendPet_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		status     int
	}{
		{"forbidden role", apperrors.ErrNotLenderRole, http.StatusForbidden},
		{"pet missing", apperrors.ErrPetNotFound, http.StatusNotFound},
		{"already lent", apperrors.ErrPetAlreadyLent, http.StatusConflict},
		{"own pet", apperrors.ErrOwnPetLend, http.StatusUnprocessableEntity},
		{"store down", apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLendingService)
			svc.On("LendPet", mock.Anything, uint(2), uint(1)).Return(nil, tt.serviceErr)
			h := NewPetHandler(svc)

			c, _ := lendRequest(t, "1", &auth.Claims{UserID: 2, Role: model.RoleLender})
			err := h.LendPet(c)
			if assert.Error(t, err) {
				httpErr := err.(*echo.HTTPError)
				assert.Equal(t, tt.status, httpErr.Code)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPetHandler_LendPet_Success(t *testing.T) {
	lenderID := uint(2)
	svc := new(MockLendingService)
	svc.On("LendPet", mock.Anything, uint(2), uint(1)).Return(&model.Pet{
		ID:       1,
		OwnerID:  1,
		Name:     "Bruno",
		Breed:    "Labrador",
		Age:      3,
		Status:   model.PetStatusLent,
		LenderID: &lenderID,
	}, nil)
	h := NewPetHandler(svc)

	c, rec := lendRequest(t, "1", &auth.Claims{UserID: 2, Role: model.RoleLender})
	err := h.LendPet(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pet lent successfully")
	assert.Contains(t, rec.Body.String(), `"status":"LENT"`)
	svc.AssertExpectations(t)
}
