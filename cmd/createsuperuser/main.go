// Command createsuperuser bootstraps an administrator account. Superusers
// hold admin-equivalent rights everywhere regardless of role and cannot be
// created through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/qutha/yamdb-final/database"
	"github.com/qutha/yamdb-final/internal/config"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

func main() {
	username := flag.String("username", "", "username for the superuser")
	email := flag.String("email", "", "email for the superuser")
	flag.Parse()

	if *username == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	// Promote an existing account instead of failing on a taken username.
	if existing, err := userRepo.FindByUsername(ctx, *username); err == nil {
		existing.Role = models.RoleAdmin
		existing.IsSuperuser = true
		if err := userRepo.Update(ctx, existing); err != nil {
			log.Fatalf("could not promote user: %v", err)
		}
		fmt.Printf("promoted existing user %q to superuser\n", existing.Username)
		return
	}

	user := &models.User{
		Username:    *username,
		Email:       *email,
		Role:        models.RoleAdmin,
		IsSuperuser: true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("could not create superuser: %v", err)
	}
	fmt.Printf("created superuser %q\n", user.Username)
}
