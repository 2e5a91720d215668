package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a closure against transaction-bound repositories, so a
// single unit of work can span user and pet writes. The transaction commits
// only when fn returns nil; any error rolls every write back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, pets PetRepository) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared DB handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, pets PetRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &petRepository{db: tx})
	})
}
