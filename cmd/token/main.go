// Command token mints an admin API bearer token for an existing user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
)

func main() {
	userID := flag.Uint("user", 0, "ID of the user the token identifies")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	skipCheck := flag.Bool("skip-check", false, "Do not verify that the user exists")
	flag.Parse()

	if *userID == 0 {
		log.Fatal("usage: go run ./cmd/token -user <id> [-ttl 24h]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !*skipCheck {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		user, err := repository.NewUserRepository(db).GetByID(context.Background(), *userID)
		if err != nil {
			log.Fatalf("Failed to load user %d: %v", *userID, err)
		}
		if user.Trashed() {
			log.Printf("warning: user %d is soft-deleted", user.ID)
		}
	}

	token, err := middleware.IssueToken(cfg.JWTSecret, *userID, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
