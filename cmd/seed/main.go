package main

import (
	"context"
	"log"
	"os"

	"digitalshop/internal/config"
	"digitalshop/internal/db"
	categoryrepo "digitalshop/internal/repository/category"
	productrepo "digitalshop/internal/repository/product"
	userrepo "digitalshop/internal/repository/user"
	"digitalshop/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	products := productrepo.NewPostgres(pool, logger)
	categories := categoryrepo.NewPostgres(pool)
	users := userrepo.NewPostgres(pool, logger)

	if err := seed.Apply(ctx, products, categories, users); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
