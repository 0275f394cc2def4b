package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"anya/internal/access"
	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/repository"
)

// Promotes an existing user to the admin role and marks the email verified.
// Running it twice yields the same end state.
func main() {
	email := os.Getenv("ADMIN_EMAIL")
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if email == "" {
		log.Fatalf("Usage: create-admin <email> (or set ADMIN_EMAIL)")
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

	user, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("User with email %s does not exist", email)
	}

	user.Role = access.RoleAdmin
	user.EmailVerified = true
	if err := userRepo.Update(ctx, user); err != nil {
		log.Fatalf("Error setting admin role: %v", err)
	}

	out, _ := json.MarshalIndent(user, "", "  ")
	log.Printf("User updated to admin:\n%s", out)
}
