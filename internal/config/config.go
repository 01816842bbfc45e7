package config

import (
	"os"
	"time"
)

// Config holds all runtime settings. Values come from the environment so the
// same binary runs in docker-compose and locally (a .env file is loaded by
// main before this is called).
type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret string

	// Admin credentials live in configuration rather than the users table.
	AdminEmail    string
	AdminPassword string

	StripeSecretKey string
	StripePublicKey string
	// FrontendURL is where the gateway redirects the customer after
	// checkout.
	FrontendURL string
	// GatewayTimeout bounds every call to the payment gateway, the only
	// unbounded-latency dependency in the system.
	GatewayTimeout time.Duration
}

func Load() Config {
	addr := os.Getenv("QUICKBUYZ_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	timeout := 10 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}

	return Config{
		Addr:            addr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripePublicKey: os.Getenv("STRIPE_PUBLIC_KEY"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		GatewayTimeout:  timeout,
	}
}
