package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
)

// ErrStatusConflict is returned by UpdateStatus when the compare-and-swap
// matched no row in the expected status. The caller decides whether that
// means "already lent" or "already available".
var ErrStatusConflict = errors.New("pet status changed concurrently")

// PetRepository defines pet persistence operations. UpdateStatus is the only
// write path for status/lender_id besides ReleaseAllByLender; both are
// guarded so a lost race is reported, never silently absorbed.
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id uint) (*model.Pet, error)
	ListByStatus(ctx context.Context, status model.PetStatus) ([]model.Pet, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Pet, error)
	ListByLender(ctx context.Context, lenderID uint) ([]model.Pet, error)
	// UpdateStatus is a compare-and-swap: the row is updated only if it is
	// still in expectedStatus and, when expectedLenderID is non-nil, still
	// held by that lender. Zero rows affected yields ErrStatusConflict.
	UpdateStatus(ctx context.Context, id uint, expectedStatus model.PetStatus, expectedLenderID *uint, newStatus model.PetStatus, newLenderID *uint) (*model.Pet, error)
	// ReleaseAllByLender resets every pet currently lent by lenderID to
	// AVAILABLE with no lender. Used by the role-downgrade cascade.
	ReleaseAllByLender(ctx context.Context, lenderID uint) error
}

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository builds a GORM-backed repository.
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *model.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *petRepository) FindByID(ctx context.Context, id uint) (*model.Pet, error) {
	var pet model.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) ListByStatus(ctx context.Context, status model.PetStatus) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) ListByLender(ctx context.Context, lenderID uint) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).Where("lender_id = ?", lenderID).Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) UpdateStatus(ctx context.Context, id uint, expectedStatus model.PetStatus, expectedLenderID *uint, newStatus model.PetStatus, newLenderID *uint) (*model.Pet, error) {
	q := r.db.WithContext(ctx).Model(&model.Pet{}).
		Where("id = ? AND status = ?", id, expectedStatus)
	if expectedLenderID != nil {
		q = q.Where("lender_id = ?", *expectedLenderID)
	}
	res := q.Updates(map[string]interface{}{
		"status":    newStatus,
		"lender_id": newLenderID,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}
	return r.FindByID(ctx, id)
}

func (r *petRepository) ReleaseAllByLender(ctx context.Context, lenderID uint) error {
	return r.db.WithContext(ctx).Model(&model.Pet{}).
		Where("lender_id = ?", lenderID).
		Updates(map[string]interface{}{
			"status":    model.PetStatusAvailable,
			"lender_id": nil,
		}).Error
}
