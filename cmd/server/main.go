package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quanggiap2004/corebanking-portal/internal/adapter/bankapi"
	"github.com/quanggiap2004/corebanking-portal/internal/adapter/httpapi"
	"github.com/quanggiap2004/corebanking-portal/internal/config"
	"github.com/quanggiap2004/corebanking-portal/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// One client serves all three collaborator contracts: transfer
	// gateway, deposit gateway, and account directory.
	bankClient := bankapi.NewClient(cfg.BankAPIBaseURL, cfg.GatewayTimeout)

	handlers := httpapi.NewHandlers(bankClient, bankClient, bankClient, cfg.GatewayTimeout)
	router := httpapi.NewRouter(handlers, cfg.JWTSecret)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Info("portal server listening", logger.Fields{
			"addr":    cfg.ListenAddr,
			"bankApi": cfg.BankAPIBaseURL,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully drains the
// server. In-flight gateway calls get up to 15 seconds to settle.
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", logger.Fields{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", err, nil)
	}
}
