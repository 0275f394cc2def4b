package main

import (
	"context"
	"log"

	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/repository"
)

// Clears every auth table, children before parents so no delete ever
// violates a foreign key reference.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	steps := []struct {
		name string
		del  func(context.Context) error
	}{
		{"apikeys", repository.NewAPIKeyRepository(gormDB).DeleteAll},
		{"verifications", repository.NewVerificationRepository(gormDB).DeleteAll},
		{"sessions", repository.NewSessionRepository(gormDB).DeleteAll},
		{"accounts", repository.NewAccountRepository(gormDB).DeleteAll},
		{"users", repository.NewUserRepository(gormDB).DeleteAll},
	}

	for _, step := range steps {
		if err := step.del(ctx); err != nil {
			log.Fatalf("Error clearing %s: %v", step.name, err)
		}
		log.Printf("Cleared %s", step.name)
	}
	log.Println("All user-related tables have been cleared.")
}
