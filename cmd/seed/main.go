package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/config"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/db"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
	Pets     []model.Pet
}

var seedUsers = []seedUser{
	{
		Name: "Swaraj", Email: "swaraj@example.com", Password: "password123", Role: model.RoleOwner,
		Pets: []model.Pet{
			{Name: "Bruno", Breed: "Labrador", Age: 3},
			{Name: "Simba", Breed: "Golden Retriever", Age: 1},
		},
	},
	{
		Name: "Asha", Email: "asha@example.com", Password: "password123", Role: model.RoleOwner,
		Pets: []model.Pet{
			{Name: "Misty", Breed: "Persian Cat", Age: 2},
		},
	},
	{
		Name: "Ravi", Email: "ravi@example.com", Password: "password123", Role: model.RoleLender,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Pet{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	petRepo := repository.NewPetRepository(gormDB)

	created := 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up %s: %v", su.Email, err)
		}
		if existing != nil {
			log.Printf("Skipping %s: already seeded", su.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		created++

		for _, p := range su.Pets {
			pet := p
			pet.OwnerID = user.ID
			pet.Status = model.PetStatusAvailable
			if err := petRepo.Create(ctx, &pet); err != nil {
				log.Fatalf("Failed to create pet %s: %v", pet.Name, err)
			}
		}
	}

	log.Printf("Seed complete: %d users created", created)
}
