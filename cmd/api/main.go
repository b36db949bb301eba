package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sparemart/internal/client"
	"sparemart/internal/config"
	"sparemart/internal/logger"
	"sparemart/internal/repository"
	"sparemart/internal/server"
	"sparemart/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
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

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db := client.InitMysqlClient(cfg.DatabaseURL)
	carrierClient := client.NewCarrierClient(&cfg.Carrier)
	rendererClient := client.NewRendererClient(&cfg.Renderer)
	mailer := client.NewMailer(&cfg.Mail)

	checkoutRepo := repository.NewCheckoutRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	resolver := service.NewPriceResolver(productRepo, log)
	dispatcher := service.NewShipmentDispatcher(carrierClient, orderRepo, cfg.Carrier.PickupName, log)
	invoiceService := service.NewInvoiceService(rendererClient, mailer, orderRepo, userRepo, &cfg.Company, log)

	checkoutService := service.NewCheckoutService(
		checkoutRepo,
		orderRepo,
		productRepo,
		userRepo,
		resolver,
		dispatcher,
		invoiceService,
		service.NewSignatureVerifier(cfg.Payment.GatewaySecret),
		log,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(checkoutService, cfg.Auth.JWTSecret)

	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
