// Comando seed: crea un usuario inicial (admin por defecto) para poder hacer
// login en una instalación nueva.
//
//	go run ./cmd/seed -email admin@tienda.local -password cambiar-ya -name Admin
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/postgres"
	"github.com/tu-usuario/punto-venta/pkg/config"
	"github.com/tu-usuario/punto-venta/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "email del usuario")
	password := flag.String("password", "", "contraseña en claro (se guarda el hash bcrypt)")
	name := flag.String("name", "Admin", "nombre del usuario")
	role := flag.String("role", entity.RoleAdmin, "rol: admin o vendedor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *email == "" || *password == "" {
		log.Fatal().Msg("-email y -password son requeridos")
	}
	if *role != entity.RoleAdmin && *role != entity.RoleVendedor {
		log.Fatal().Str("role", *role).Msg("rol inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	userRepo := postgres.NewUserRepository(pool)
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: string(hash),
		Name:         *name,
		Role:         *role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(user); err != nil {
		if err == domain.ErrDuplicate {
			log.Fatal().Str("email", *email).Msg("el email ya existe")
		}
		log.Fatal().Err(err).Msg("crear usuario")
	}

	log.Info().
		Str("id", user.ID).
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("usuario creado")
}
