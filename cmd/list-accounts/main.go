package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/repository"
)

// Lists the accounts (credential bindings) of the user with the given email.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: list-accounts <email>")
	}
	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	user, err := repository.NewUserRepository(gormDB).FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("No user found with email: %s", email)
	}

	accounts, err := repository.NewAccountRepository(gormDB).ListByUserID(ctx, user.ID)
	if err != nil {
		log.Fatalf("Error fetching accounts: %v", err)
	}
	if len(accounts) == 0 {
		fmt.Printf("User with email %s has no linked accounts/providers.\n", email)
		return
	}

	fmt.Printf("Accounts for user %s (userId: %s):\n", email, user.ID)
	for _, acc := range accounts {
		fmt.Printf("- Provider: %s, Account ID: %s\n", acc.ProviderID, acc.AccountID)
	}
}
