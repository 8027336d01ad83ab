package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr     = ":8090"
	defaultBankAPIBaseURL = "http://localhost:8080/api"
	defaultJWTSecret      = "dev-secret"
	defaultGatewayTimeout = 30 * time.Second
)

type Config struct {
	// ListenAddr is the portal's own HTTP listen address
	ListenAddr string

	// BankAPIBaseURL is the remote banking API the gateways call
	BankAPIBaseURL string

	// JWTSecret verifies the session bearer tokens issued by the bank.
	// Token issuance itself is not the portal's concern.
	JWTSecret string

	// GatewayTimeout bounds each pending gateway call. Expiry is
	// surfaced to the user as a submission failure.
	GatewayTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		BankAPIBaseURL: defaultBankAPIBaseURL,
		JWTSecret:      defaultJWTSecret,
		GatewayTimeout: defaultGatewayTimeout,
	}

	if addr := strings.TrimSpace(os.Getenv("PORTAL_LISTEN_ADDR")); addr != "" {
		cfg.ListenAddr = addr
	}

	if baseURL := strings.TrimSpace(os.Getenv("BANK_API_BASE_URL")); baseURL != "" {
		cfg.BankAPIBaseURL = strings.TrimRight(baseURL, "/")
	}

	if secret := strings.TrimSpace(os.Getenv("PORTAL_JWT_SECRET")); secret != "" {
		cfg.JWTSecret = secret
	}

	if raw := strings.TrimSpace(os.Getenv("GATEWAY_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid GATEWAY_TIMEOUT_SECONDS: %q", raw)
		}
		cfg.GatewayTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
