package model

import (
	"time"

	apperrors "github.com/SwarajMhashakhetri/Dog-Hostel/internal/errors"
)

// Role is a user's current capability mode. A user holds exactly one role at
// a time; it changes only through the role service.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleLender Role = "LENDER"
)

// ParseRole validates a raw role value at the boundary. Unrecognized values
// are rejected here once, so no other code path needs ad hoc role checks.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleLender:
		return RoleLender, nil
	default:
		return "", apperrors.ErrInvalidRole
	}
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:50;not null;default:'OWNER'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Pets     []Pet `json:"pets,omitempty" gorm:"foreignKey:OwnerID"`
	LentPets []Pet `json:"lent_pets,omitempty" gorm:"foreignKey:LenderID"`
}
