package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/auth"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/cache"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/config"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/db"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/handler"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/model"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/repository"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/router"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/service"
)

// @title Pet Hostel API
// @version 1.0
// @description Pet hostel API with pet registration, lending lifecycle, role switching, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Pet{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	petRepo := repository.NewPetRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	lendingService := service.NewLendingService(userRepo, petRepo, cacheClient, service.LendingOptions{
		StrictReturn: cfg.StrictReturn,
	})
	roleService := service.NewRoleService(txManager, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	petHandler := handler.NewPetHandler(lendingService)
	userHandler := handler.NewUserHandler(userService, roleService, lendingService)

	// Register routes
	router.Register(e, cfg, jwtService, authHandler, petHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
