package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"anya/internal/auth"
	"anya/internal/config"
	"anya/internal/model"
)

// Signs a user in over the HTTP API and starts linking their Discord account.
// The printed URL completes the flow in a browser.
func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: link-discord <email> <password>")
	}
	email, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseURL := os.Getenv("ANYA_API_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	client := auth.NewClient(baseURL)
	ctx := context.Background()

	signIn, err := client.SignInEmail(ctx, email, password)
	if err != nil {
		log.Fatalf("Failed to sign in: %v", err)
	}
	log.Printf("Signed in as: %s", signIn.User.Email)

	link, err := client.LinkSocial(ctx, signIn.Token, model.ProviderDiscord, "/")
	if err != nil {
		log.Fatalf("Failed to link Discord: %v", err)
	}

	fmt.Println("To complete Discord linking, open this URL in your browser:")
	fmt.Println(link.URL)
	fmt.Println("(After completing the flow, Discord will be linked to this user.)")
}
