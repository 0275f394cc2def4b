package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anya/internal/access"
	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/model"
	"anya/internal/repository"
)

const bcryptCost = 10

// Seeds a fresh admin user with a credential account. The user and account
// are inserted in one transaction so a failure leaves no partial state.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: seed-admin <email> <password> [name]")
	}
	email, password := os.Args[1], os.Args[2]
	name := "Admin"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Fatalf("User with email %s already exists", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Error checking existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}
	hash := string(hashed)

	user := &model.User{
		Name:          name,
		Email:         email,
		EmailVerified: true,
		Role:          access.RoleAdmin,
	}
	account := &model.Account{
		ProviderID: model.ProviderCredential,
		Password:   &hash,
	}
	if err := userRepo.CreateWithAccount(ctx, user, account); err != nil {
		log.Fatalf("Error creating admin user: %v", err)
	}

	out, _ := json.MarshalIndent(user, "", "  ")
	log.Printf("Admin user created:\n%s", out)
}
