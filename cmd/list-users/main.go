package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"anya/internal/config"
	"anya/internal/db"
	"anya/internal/repository"
)

// Prints every user as indented JSON.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users, err := repository.NewUserRepository(gormDB).List(context.Background())
	if err != nil {
		log.Fatalf("Error fetching users: %v", err)
	}

	out, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding users: %v", err)
	}
	fmt.Println(string(out))
}
