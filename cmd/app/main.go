package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kashishh0311/quickbuyz-backend/internal/address"
	"github.com/kashishh0311/quickbuyz-backend/internal/cart"
	"github.com/kashishh0311/quickbuyz-backend/internal/config"
	"github.com/kashishh0311/quickbuyz-backend/internal/dashboard"
	"github.com/kashishh0311/quickbuyz-backend/internal/feedback"
	"github.com/kashishh0311/quickbuyz-backend/internal/order"
	"github.com/kashishh0311/quickbuyz-backend/internal/payment"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
	"github.com/kashishh0311/quickbuyz-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	setupLogger()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	// repositories and services; the order matters only in that later
	// services consume earlier ones
	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db), cartService, addressService, productService)
	orderHandler := order.NewHandler(orderService)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.FrontendURL, cfg.GatewayTimeout)
	paymentService := payment.NewService(payment.NewPostgresRepository(db), gateway, orderService)
	paymentHandler := payment.NewHandler(paymentService)

	feedbackService := feedback.NewService(feedback.NewPostgresRepository(db), orderService, productService)
	feedbackHandler := feedback.NewHandler(feedbackService)

	dashboardHandler := dashboard.NewHandler(dashboard.NewPostgresRepository(db))

	// public surface
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	feedbackHandler.RegisterPublicRoutes(app)

	// everything below requires a valid token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	feedbackHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", user.RequireAdmin)
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	feedbackHandler.RegisterAdminRoutes(admin)
	dashboardHandler.RegisterAdminRoutes(admin)

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "1" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Info().
		Str("method", c.Method()).
		Str("path", c.OriginalURL()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	return db
}

// ensureSchema creates the tables on first run so docker-compose works
// without a separate migration step.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            phone TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS address (
            address_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL,
            address_type TEXT,
            details TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            product_id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            price NUMERIC NOT NULL DEFAULT 0,
            category TEXT,
            is_available BOOLEAN NOT NULL DEFAULT TRUE,
            stock INT NOT NULL DEFAULT 0,
            image TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            cart_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL UNIQUE,
            items JSONB NOT NULL DEFAULT '[]',
            total_cart_amount NUMERIC NOT NULL DEFAULT 0,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL,
            order_items JSONB NOT NULL DEFAULT '[]',
            total_order_amount NUMERIC NOT NULL DEFAULT 0,
            charges NUMERIC NOT NULL DEFAULT 0,
            order_status TEXT NOT NULL DEFAULT 'Pending',
            delivery_address JSONB NOT NULL DEFAULT '{}',
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            payment_id SERIAL PRIMARY KEY,
            order_id INT NOT NULL UNIQUE,
            user_id INT NOT NULL,
            payment_method TEXT NOT NULL DEFAULT 'Digital',
            amount NUMERIC NOT NULL DEFAULT 0,
            payment_status TEXT NOT NULL DEFAULT 'Pending',
            transaction_id TEXT,
            stripe_session_id TEXT,
            created_at TEXT,
            updated_at TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS feedback (
            feedback_id SERIAL PRIMARY KEY,
            user_id INT NOT NULL,
            product_id INT NOT NULL,
            rating INT NOT NULL,
            comment TEXT,
            created_at TEXT,
            updated_at TEXT,
            UNIQUE (user_id, product_id)
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal().Err(err).Msg("ensure schema")
		}
	}
}
