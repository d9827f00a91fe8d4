package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/inkpost/inkpost/config"
	"github.com/inkpost/inkpost/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	email := "demo@inkpost.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var blogID string
	err = db.QueryRow(`
		INSERT INTO blogs (author_id, title, content, tags)
		VALUES ($1, $2, $3, ARRAY['welcome','demo'])
		RETURNING id
	`, userID, "Hello, Inkpost", "This is the first seeded post.").Scan(&blogID)
	if err != nil {
		log.Fatalf("failed to seed blog: %v", err)
	}
	fmt.Printf("seeded blog: id=%s\n", blogID)

	if _, err := db.Exec(`
		INSERT INTO comments (blog_id, author_id, content)
		VALUES ($1, $2, $3)
	`, blogID, userID, "First!"); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}
	fmt.Println("seeded comment")
}
