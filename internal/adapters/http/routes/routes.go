package routes

import (
	"campus-keyledger/internal/adapters/http/handlers"
	"campus-keyledger/internal/adapters/http/middleware"
	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/config"
	"campus-keyledger/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	roomRepo := repositories.NewRoomRepository(db)
	keyRepo := repositories.NewKeyRepository(db)
	personRepo := repositories.NewPersonRepository(db)
	authorizationRepo := repositories.NewAuthorizationRepository(db)
	borrowingRepo := repositories.NewBorrowingRepository(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	ledgerService := services.NewLedgerService(roomRepo, keyRepo)
	authorizationService := services.NewAuthorizationService(authorizationRepo, personRepo, roomRepo)
	borrowingService := services.NewBorrowingService(borrowingRepo)
	personService := services.NewPersonService(personRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	authorizationHandler := handlers.NewAuthorizationHandler(authorizationService)
	borrowingHandler := handlers.NewBorrowingHandler(borrowingService)
	personHandler := handlers.NewPersonHandler(personService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	// Auth routes (rate limited)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	// Everything below requires a logged-in desk operator
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	// Rooms & floors
	protected.Get("/floors", ledgerHandler.ListFloors)
	protected.Get("/rooms", ledgerHandler.ListRooms)
	protected.Get("/floors/:floor/rooms", ledgerHandler.ListRoomsByFloor)
	protected.Get("/floors/:floor/rooms/available", ledgerHandler.ListAvailableRooms)
	protected.Get("/floors/:floor/rooms/availability", ledgerHandler.RoomAvailability)

	// Keys
	protected.Get("/keys", ledgerHandler.ListKeys)
	protected.Get("/floors/:floor/keys/borrowable", ledgerHandler.ListBorrowableKeys)

	// Authorizations
	protected.Get("/authorizations", authorizationHandler.List)
	protected.Get("/authorizations/overview", authorizationHandler.Overview)
	protected.Get("/rooms/:roomId/authorizations/valid", authorizationHandler.ValidForRoom)
	protected.Get("/rooms/:roomId/authorizations/prioritized", authorizationHandler.PrioritizedForRoom)
	protected.Post("/authorizations", authorizationHandler.Create)
	protected.Patch("/authorizations/:id/invalidate", authorizationHandler.Invalidate)

	// Borrowings
	protected.Post("/borrowings", borrowingHandler.Create)
	protected.Patch("/borrowings/:id/return", borrowingHandler.Return)
	protected.Get("/borrowings/ongoing", borrowingHandler.Ongoing)
	protected.Get("/borrowings/export", borrowingHandler.ExportRows)
	protected.Get("/borrowings/:id", borrowingHandler.Get)

	// Persons
	protected.Get("/persons", personHandler.List)
	protected.Get("/persons/:id", personHandler.Get)
	protected.Post("/persons", personHandler.Create)
	protected.Patch("/persons/:id", personHandler.Update)

	// User administration (superuser only)
	admin := api.Group("/users", middleware.AuthMiddleware(cfg), middleware.SuperuserOnly())
	admin.Get("/", userHandler.List)
	admin.Post("/", authHandler.Register)
}
