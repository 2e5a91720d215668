package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/cache"
	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/repository"
)

const (
	availablePetsCacheKey = "pets:available"
	availablePetsCacheTTL = 30 * time.Second
)

// LendingService governs the pet lending lifecycle: registration, the
// AVAILABLE -> LENT transition and its reverse. Every precondition is
// verified before any write, and each transition commits through a
// compare-and-swap on the pet's status so concurrent requests cannot
// both succeed.
type LendingService interface {
	RegisterPet(ctx context.Context, ownerID uint, name, breed string, age int) (*model.Pet, error)
	LendPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error)
	ReturnPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error)
	ListAvailablePets(ctx context.Context) ([]model.Pet, error)
	ListPetsForUser(ctx context.Context, userID uint) (owned, lent []model.Pet, err error)
}

// LendingOptions tunes policy choices that have no single right answer.
type LendingOptions struct {
	// StrictReturn rejects returns from anyone but the recorded lender.
	StrictReturn bool
}

type lendingService struct {
	userRepo repository.UserRepository
	petRepo  repository.PetRepository
	cache    *cache.Client
	opts     LendingOptions
}

// NewLendingService creates a lending service.
func NewLendingService(userRepo repository.UserRepository, petRepo repository.PetRepository, cache *cache.Client, opts LendingOptions) LendingService {
	return &lendingService{
		userRepo: userRepo,
		petRepo:  petRepo,
		cache:    cache,
		opts:     opts,
	}
}

// RegisterPet creates a new AVAILABLE pet owned by the acting user.
func (s *lendingService) RegisterPet(ctx context.Context, ownerID uint, name, breed string, age int) (*model.Pet, error) {
	name = strings.TrimSpace(name)
	breed = strings.TrimSpace(breed)
	if name == "" || breed == "" || age < 0 {
		return nil, apperrors.ErrInvalidPetData
	}

	pet := &model.Pet{
		OwnerID: ownerID,
		Name:    name,
		Breed:   breed,
		Age:     age,
		Status:  model.PetStatusAvailable,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, apperrors.FromStore(err)
	}

	_ = s.cache.Delete(ctx, availablePetsCacheKey)
	return pet, nil
}

// LendPet moves an AVAILABLE pet to LENT with the acting user as lender.
// The role is read from the user record, not from the token, so a role
// change takes effect immediately. At most one concurrent lend on the
// same pet can win the final compare-and-swap.
func (s *lendingService) LendPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error) {
	user, err := s.userRepo.FindByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromStore(err)
	}

	if user.Role != model.RoleLender {
		return nil, apperrors.ErrNotLenderRole
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPetNotFound
		}
		return nil, apperrors.FromStore(err)
	}

	if pet.Status == model.PetStatusLent {
		return nil, apperrors.ErrPetAlreadyLent
	}
	if pet.OwnerID == user.ID {
		return nil, apperrors.ErrOwnPetLend
	}

	lenderID := user.ID
	updated, err := s.petRepo.UpdateStatus(ctx, petID, model.PetStatusAvailable, nil, model.PetStatusLent, &lenderID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			// lost the race against a concurrent lend
			return nil, apperrors.ErrPetAlreadyLent
		}
		return nil, apperrors.FromStore(err)
	}

	_ = s.cache.Delete(ctx, availablePetsCacheKey)
	return updated, nil
}

// ReturnPet moves a LENT pet back to AVAILABLE and clears its lender.
// A repeat return of an already-available pet is rejected, not absorbed.
func (s *lendingService) ReturnPet(ctx context.Context, actingUserID, petID uint) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPetNotFound
		}
		return nil, apperrors.FromStore(err)
	}

	if pet.Status != model.PetStatusLent {
		return nil, apperrors.ErrPetNotLent
	}
	// In strict mode the lender is part of the compare-and-swap predicate,
	// so a pet re-lent to someone else between the read and the write fails
	// the swap instead of being returned on their behalf.
	var expectedLender *uint
	if s.opts.StrictReturn {
		if pet.LenderID == nil || *pet.LenderID != actingUserID {
			return nil, apperrors.ErrNotCurrentLender
		}
		expectedLender = &actingUserID
	}

	updated, err := s.petRepo.UpdateStatus(ctx, petID, model.PetStatusLent, expectedLender, model.PetStatusAvailable, nil)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			// A lost swap in strict mode is ambiguous: the pet was either
			// returned already or re-lent to another lender. Re-read to
			// tell the two apart.
			if s.opts.StrictReturn {
				if current, ferr := s.petRepo.FindByID(ctx, petID); ferr == nil && current.Status == model.PetStatusLent {
					return nil, apperrors.ErrNotCurrentLender
				}
			}
			return nil, apperrors.ErrPetNotLent
		}
		return nil, apperrors.FromStore(err)
	}

	_ = s.cache.Delete(ctx, availablePetsCacheKey)
	return updated, nil
}

// ListAvailablePets returns a snapshot of all AVAILABLE pets, cached briefly.
func (s *lendingService) ListAvailablePets(ctx context.Context) ([]model.Pet, error) {
	if data, _ := s.cache.Get(ctx, availablePetsCacheKey); data != nil {
		var cached []model.Pet
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	pets, err := s.petRepo.ListByStatus(ctx, model.PetStatusAvailable)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	if payload, err := json.Marshal(pets); err == nil {
		_ = s.cache.Set(ctx, availablePetsCacheKey, payload, availablePetsCacheTTL)
	}
	return pets, nil
}

// ListPetsForUser returns the pets a user owns and the pets they currently lend.
func (s *lendingService) ListPetsForUser(ctx context.Context, userID uint) (owned, lent []model.Pet, err error) {
	owned, err = s.petRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.FromStore(err)
	}
	lent, err = s.petRepo.ListByLender(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.FromStore(err)
	}
	return owned, lent, nil
}
