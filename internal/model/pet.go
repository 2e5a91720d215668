package model

import "time"

// PetStatus is the lending lifecycle state of a pet. There are exactly two
// states and two transitions: AVAILABLE -> LENT via a lend, LENT -> AVAILABLE
// via a return or the role-downgrade cascade.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "AVAILABLE"
	PetStatusLent      PetStatus = "LENT"
)

// Pet represents a registered pet. OwnerID is fixed at registration.
// LenderID is set exactly while Status is LENT and is never the owner.
// Status and LenderID are written only by the lending and role services.
type Pet struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	OwnerID  uint      `json:"owner_id" gorm:"not null;index"`
	Name     string    `json:"name" gorm:"size:255;not null"`
	Breed    string    `json:"breed" gorm:"size:255;not null"`
	Age      int       `json:"age" gorm:"not null"`
	Status   PetStatus `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	LenderID *uint     `json:"lender_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner  *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Lender *User `json:"lender,omitempty" gorm:"foreignKey:LenderID"`
}
