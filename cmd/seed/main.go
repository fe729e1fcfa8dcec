package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hypenest/internal/config"
	"hypenest/internal/db"
	"hypenest/internal/logging"
	"hypenest/internal/model"
	"hypenest/internal/repository"
)

// seed creates a verified ADMIN account from SEED_ADMIN_* variables. Admins
// have no brand or creator profile and skip the OTP round trip.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB, false, logging.New(cfg.LogLevel)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	accounts := repository.NewAccountRepository(gormDB)

	existing, err := accounts.FindByEmail(ctx, cfg.Seed.AdminEmail)
	switch {
	case err == nil:
		if err := accounts.MarkVerified(ctx, existing.ID); err != nil {
			log.Fatalf("Failed to verify existing admin: %v", err)
		}
		log.Printf("Account %s already exists (role %s), marked verified", existing.Email, existing.Role)
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatalf("Failed to look up admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.Account{
		ID:           uuid.New(),
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: string(hash),
		Name:         cfg.Seed.AdminName,
		Role:         model.RoleAdmin,
		IsVerified:   true,
	}
	if err := accounts.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Seed completed: admin %s (%s)", admin.Email, admin.ID)
}
