package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/SwarajMhashakhetri/Dog-Hostel/docs"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/auth"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/config"
	"github.com/SwarajMhashakhetri/Dog-Hostel/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	petHandler *handler.PetHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/pets", petHandler.ListAvailablePets)

	// Secured routes (require JWT authentication). The parsed claims are the
	// caller identity consumed by every mutating operation.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.GET("/me/pets", userHandler.MyPets)
	secured.PATCH("/auth/updateRole", userHandler.UpdateRole)

	secured.POST("/pets", petHandler.RegisterPet)
	secured.POST("/pets/:id/lend", petHandler.LendPet)
	secured.POST("/pets/:id/return", petHandler.ReturnPet)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
