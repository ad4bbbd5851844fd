package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/precintos-api/internal/application/auth"
	"github.com/jhoicas/precintos-api/internal/application/seals"
	"github.com/jhoicas/precintos-api/internal/application/usecase"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SealUC     *seals.SealUseCase
	UserUC     *usecase.UserUseCase
	CityUC     *usecase.CityUseCase
	SettingsUC *usecase.SettingsUseCase
	BackupUC   *usecase.BackupUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Seals (protegido). Las rutas estáticas van antes de /:id para que
	// Fiber no las capture como parámetro.
	sealsGroup := protected.Group("/seals")
	sealHandler := NewSealHandler(deps.SealUC)
	sealsGroup.Post("/", sealHandler.Create)
	sealsGroup.Get("/", sealHandler.List)
	sealsGroup.Post("/resolve", sealHandler.Resolve)
	sealsGroup.Put("/movement", sealHandler.Movement)
	sealsGroup.Post("/import", sealHandler.Import)
	sealsGroup.Get("/export", sealHandler.Export)
	sealsGroup.Get("/:id", sealHandler.GetByID)
	sealsGroup.Get("/:id/history", sealHandler.History)
	sealsGroup.Delete("/:id", adminOnly, sealHandler.Delete)

	// Users (protegido, solo ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Cities (lectura para todos; mutaciones solo ADMIN)
	cities := protected.Group("/cities")
	cityHandler := NewCityHandler(deps.CityUC)
	cities.Get("/", cityHandler.List)
	cities.Post("/", adminOnly, cityHandler.Create)
	cities.Put("/:id", adminOnly, cityHandler.Rename)
	cities.Delete("/:id", adminOnly, cityHandler.Delete)

	// Settings (lectura para todos; mutación solo ADMIN)
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", adminOnly, settingsHandler.Update)

	// Backup (solo ADMIN)
	backup := protected.Group("/backup", adminOnly)
	backupHandler := NewBackupHandler(deps.BackupUC)
	backup.Get("/", backupHandler.Export)
	backup.Post("/restore", backupHandler.Restore)
}
