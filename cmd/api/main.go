package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candy-shop/internal/client"
	"candy-shop/internal/config"
	"candy-shop/internal/repository"
	"candy-shop/internal/server"
	"candy-shop/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)

	accountRepo := repository.NewAccountRepository(db)
	candyRepo := repository.NewCandyRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	if err := candyRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed candy catalog:", err)
	}

	sessions := service.NewSessionRegistry()
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	userService := service.NewUserService(accountRepo, sessions, []byte(cfg.Auth.JWTSecret), tokenTTL)
	shopService := service.NewShopService(db, sessions, candyRepo, orderRepo, txnRepo)
	reportService := service.NewReportService(orderRepo)

	staff := cfg.Staff
	if err := userService.EnsureStaff(context.Background(), staff.Name, staff.Email, staff.Password, staff.Position); err != nil {
		log.Fatal("seed staff account:", err)
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(userService, shopService, reportService, []byte(cfg.Auth.JWTSecret))

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
