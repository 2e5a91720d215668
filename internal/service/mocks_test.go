package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockPetRepository is a mock implementation of PetRepository.
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) FindByID(ctx context.Context, id uint) (*model.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) ListByStatus(ctx context.Context, status model.PetStatus) ([]model.Pet, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockPetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Pet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockPetRepository) ListByLender(ctx context.Context, lenderID uint) ([]model.Pet, error) {
	args := m.Called(ctx, lenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockPetRepository) UpdateStatus(ctx context.Context, id uint, expectedStatus model.PetStatus, expectedLenderID *uint, newStatus model.PetStatus, newLenderID *uint) (*model.Pet, error) {
	args := m.Called(ctx, id, expectedStatus, expectedLenderID, newStatus, newLenderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) ReleaseAllByLender(ctx context.Context, lenderID uint) error {
	args := m.Called(ctx, lenderID)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// memStore is an in-memory stand-in for the database used where mock
// expectations are too coarse: concurrent compare-and-swap races and
// rollback of the role-change transaction.
type memStore struct {
	mu         sync.Mutex
	users      map[uint]*model.User
	pets       map[uint]*model.Pet
	nextPetID  uint
	releaseErr error // injected failure for the cascade
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uint]*model.User),
		pets:      make(map[uint]*model.Pet),
		nextPetID: 1,
	}
}

func (s *memStore) addUser(u model.User) {
	s.users[u.ID] = &u
}

func (s *memStore) addPet(p model.Pet) {
	if p.ID == 0 {
		p.ID = s.nextPetID
	}
	if p.ID >= s.nextPetID {
		s.nextPetID = p.ID + 1
	}
	s.pets[p.ID] = &p
}

func (s *memStore) pet(id uint) model.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.pets[id]
}

func (s *memStore) user(id uint) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.users[id]
}

func copyUsers(in map[uint]*model.User) map[uint]*model.User {
	out := make(map[uint]*model.User, len(in))
	for k, v := range in {
		u := *v
		out[k] = &u
	}
	return out
}

func copyPets(in map[uint]*model.Pet) map[uint]*model.Pet {
	out := make(map[uint]*model.Pet, len(in))
	for k, v := range in {
		p := *v
		if v.LenderID != nil {
			l := *v.LenderID
			p.LenderID = &l
		}
		out[k] = &p
	}
	return out
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = user
	return nil
}

func (r memUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memUserRepo) UpdateRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

type memPetRepo struct{ s *memStore }

func (r memPetRepo) Create(ctx context.Context, pet *model.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pet.ID = r.s.nextPetID
	r.s.nextPetID++
	cp := *pet
	r.s.pets[pet.ID] = &cp
	return nil
}

func (r memPetRepo) FindByID(ctx context.Context, id uint) (*model.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPetRepo) ListByStatus(ctx context.Context, status model.PetStatus) ([]model.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var pets []model.Pet
	for _, p := range r.s.pets {
		if p.Status == status {
			pets = append(pets, *p)
		}
	}
	return pets, nil
}

func (r memPetRepo) ListByOwner(ctx context.Context, ownerID uint) ([]model.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var pets []model.Pet
	for _, p := range r.s.pets {
		if p.OwnerID == ownerID {
			pets = append(pets, *p)
		}
	}
	return pets, nil
}

func (r memPetRepo) ListByLender(ctx context.Context, lenderID uint) ([]model.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var pets []model.Pet
	for _, p := range r.s.pets {
		if p.LenderID != nil && *p.LenderID == lenderID {
			pets = append(pets, *p)
		}
	}
	return pets, nil
}

// UpdateStatus performs the compare-and-swap under the store lock, like a
// single UPDATE ... WHERE status = ? statement would.
func (r memPetRepo) UpdateStatus(ctx context.Context, id uint, expectedStatus model.PetStatus, expectedLenderID *uint, newStatus model.PetStatus, newLenderID *uint) (*model.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pets[id]
	if !ok || p.Status != expectedStatus {
		return nil, repository.ErrStatusConflict
	}
	if expectedLenderID != nil && (p.LenderID == nil || *p.LenderID != *expectedLenderID) {
		return nil, repository.ErrStatusConflict
	}
	p.Status = newStatus
	p.LenderID = newLenderID
	cp := *p
	return &cp, nil
}

func (r memPetRepo) ReleaseAllByLender(ctx context.Context, lenderID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.releaseErr != nil {
		return r.s.releaseErr
	}
	for _, p := range r.s.pets {
		if p.LenderID != nil && *p.LenderID == lenderID {
			p.Status = model.PetStatusAvailable
			p.LenderID = nil
		}
	}
	return nil
}

// memTxManager snapshots the store before running fn and restores the
// snapshot when fn fails, mirroring a rolled-back transaction.
type memTxManager struct{ s *memStore }

func (m memTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, pets repository.PetRepository) error) error {
	m.s.mu.Lock()
	usersBefore := copyUsers(m.s.users)
	petsBefore := copyPets(m.s.pets)
	m.s.mu.Unlock()

	if err := fn(ctx, memUserRepo{m.s}, memPetRepo{m.s}); err != nil {
		m.s.mu.Lock()
		m.s.users = usersBefore
		m.s.pets = petsBefore
		m.s.mu.Unlock()
		return err
	}
	return nil
}
