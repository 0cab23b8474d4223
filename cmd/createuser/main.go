// Command createuser provisions an account; there is no public sign-up.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"interno-chat/internal/app"
	"interno-chat/internal/config"
	"interno-chat/internal/pkg/logger"
	mysqlClient "interno-chat/internal/platform/mysql"
	"interno-chat/internal/repository"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", os.Getenv("CREATEUSER_PASSWORD"), "password, defaults to $CREATEUSER_PASSWORD")
	email := flag.String("email", "", "optional email")
	fullName := flag.String("full-name", "", "optional display name")
	role := flag.String("role", "user", "super_admin, admin or user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	lg := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN(), lg.Logger)
	if err != nil {
		log.Fatalf("connect mysql failed: %v", err)
	}

	authService := app.NewAuthService(
		repository.NewUserRepository(db),
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)
	user, err := authService.CreateUser(ctx, app.CreateUserInput{
		Username: *username,
		Email:    *email,
		FullName: *fullName,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		log.Fatalf("create user failed: %v", err)
	}
	lg.Info("user created", "id", user.ID, "username", user.Username, "role", user.Role)
}
