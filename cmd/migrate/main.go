// Command migrate adds the conversation_id columns and creates any missing
// tables. Running it again is a no-op.
package main

import (
	"context"
	"log"
	"os"

	"interno-chat/internal/config"
	"interno-chat/internal/migration"
	"interno-chat/internal/pkg/logger"
	mysqlClient "interno-chat/internal/platform/mysql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	lg := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	db, err := mysqlClient.New(context.Background(), cfg.MySQLDSN(), lg.Logger)
	if err != nil {
		log.Fatalf("connect mysql failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	applied, err := migration.Apply(db)
	if err != nil {
		lg.LogError(err, "migration failed")
		os.Exit(1)
	}
	if len(applied) == 0 {
		lg.Info("schema already up to date")
		return
	}
	for _, step := range applied {
		lg.Info("applied", "step", step)
	}
}
