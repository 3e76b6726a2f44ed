package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"digitalshop/internal/cart"
	"digitalshop/internal/checkout"
	"digitalshop/internal/config"
	"digitalshop/internal/db"
	"digitalshop/internal/httpserver"
	categoryrepo "digitalshop/internal/repository/category"
	contactrepo "digitalshop/internal/repository/contact"
	orderrepo "digitalshop/internal/repository/order"
	productrepo "digitalshop/internal/repository/product"
	tokenrepo "digitalshop/internal/repository/token"
	userrepo "digitalshop/internal/repository/user"
	adminsvc "digitalshop/internal/service/admin"
	catalogsvc "digitalshop/internal/service/catalog"
	contactsvc "digitalshop/internal/service/contact"
	usersvc "digitalshop/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var persistence cart.Persistence
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		persistence = cart.NewRedisPersistence(client, cfg.CartTTL)
		logger.Printf("cart persistence enabled via redis at %s", cfg.RedisAddr)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	contactRepo := contactrepo.NewPostgres(dbpool)

	userService := usersvc.New(userRepo, tokenRepo)
	catalogService := catalogsvc.New(productRepo, categoryRepo)
	adminService := adminsvc.New(orderRepo, userRepo, contactRepo)
	contactService := contactsvc.New(contactRepo)
	cartSessions := cart.NewSessions(persistence, logger)
	checkoutFlow := checkout.New(orderRepo, logNotifier{logger}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Users:    userService,
		Catalog:  catalogService,
		Admin:    adminService,
		Contact:  contactService,
		Orders:   orderRepo,
		Carts:    cartSessions,
		Checkout: checkoutFlow,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// logNotifier surfaces checkout outcomes in the server log.
type logNotifier struct {
	logger *log.Logger
}

func (n logNotifier) Success(msg string) { n.logger.Printf("checkout: %s", msg) }
func (n logNotifier) Error(msg string)   { n.logger.Printf("checkout error: %s", msg) }
