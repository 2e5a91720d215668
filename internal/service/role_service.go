package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/cache"
	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/repository"
)

// RoleService coordinates role transitions between OWNER and LENDER.
//
// Downgrading to OWNER force-returns every pet the user currently lends,
// in the same database transaction as the role write. Without the cascade
// a LENT pet could reference a non-LENDER forever; without the shared
// transaction a crash could leave one side applied and not the other.
type RoleService interface {
	ChangeRole(ctx context.Context, actingUserID uint, newRole string) (*model.User, error)
}

type roleService struct {
	tx    repository.TxManager
	cache *cache.Client
}

// NewRoleService creates a role service.
func NewRoleService(tx repository.TxManager, cache *cache.Client) RoleService {
	return &roleService{tx: tx, cache: cache}
}

// ChangeRole switches the user's role. All-or-nothing: an error anywhere in
// the cascade or the role write leaves prior state fully intact.
func (s *roleService) ChangeRole(ctx context.Context, actingUserID uint, newRole string) (*model.User, error) {
	role, err := model.ParseRole(newRole)
	if err != nil {
		return nil, err
	}

	var updated *model.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, pets repository.PetRepository) error {
		if role == model.RoleOwner {
			if err := pets.ReleaseAllByLender(ctx, actingUserID); err != nil {
				return fmt.Errorf("release lent pets: %w", err)
			}
		}
		user, err := users.UpdateRole(ctx, actingUserID, role)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromStore(err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(actingUserID))
	_ = s.cache.Delete(ctx, availablePetsCacheKey)
	return updated, nil
}
