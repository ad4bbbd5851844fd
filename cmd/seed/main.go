// seed crea los datos mínimos para arrancar una instalación nueva:
// la sede inicial, el usuario ADMIN y la configuración por defecto.
//
// Uso: go run ./cmd/seed
// Variables: SEED_ADMIN_USERNAME, SEED_ADMIN_PASSWORD, SEED_CITY (por defecto
// admin / admin12345 / BOGOTÁ). Es idempotente: si el usuario o la sede ya
// existen, los deja intactos.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/precintos-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "admin12345")
	cityName := envOr("SEED_CITY", "BOGOTÁ")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	cityRepo := postgres.NewCityRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	now := time.Now()

	city, err := cityRepo.GetByName(cityName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar sede: %v\n", err)
		os.Exit(1)
	}
	if city == nil {
		city = &entity.City{
			ID:        uuid.New().String(),
			Name:      cityName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := cityRepo.Create(city); err != nil {
			fmt.Fprintf(os.Stderr, "crear sede: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("sede creada: %s\n", city.Name)
	} else {
		fmt.Printf("sede ya existe: %s\n", city.Name)
	}

	user, err := userRepo.GetByUsername(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar usuario: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
			os.Exit(1)
		}
		user = &entity.User{
			ID:           uuid.New().String(),
			Username:     username,
			FullName:     "Administrador",
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			City:         city.Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("usuario ADMIN creado: %s\n", user.Username)
	} else {
		fmt.Printf("usuario ya existe: %s\n", user.Username)
	}

	settings, err := settingsRepo.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar configuración: %v\n", err)
		os.Exit(1)
	}
	settings.UpdatedAt = now
	if err := settingsRepo.Save(settings); err != nil {
		fmt.Fprintf(os.Stderr, "guardar configuración: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("configuración inicial: safe_mode=%v, tipos=%v\n", settings.SafeMode, settings.SealTypes)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
