package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	"github.com/stripe/stripe-go/v83"

	"selta_back_end/internal/cache"
	"selta_back_end/internal/config"
	"selta_back_end/internal/database"
	"selta_back_end/internal/handlers/payment"
	"selta_back_end/internal/routes"
	"selta_back_end/internal/utils"
)

func main() {
	cfg := config.Load()

	if cfg.StripeSecretKey == "" {
		log.Fatal("❌ STRIPE_SECRET_KEY is required")
	}
	stripe.Key = cfg.StripeSecretKey

	deps, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Startup failed: ", err)
	}
	defer deps.Close()

	if err := database.EnsureAdminUser(deps.DB, cfg); err != nil {
		log.Fatal("❌ Admin bootstrap failed: ", err)
	}

	setupOAuth(cfg)

	app := &routes.App{
		Cfg:      cfg,
		DB:       deps.DB,
		Redis:    deps.Redis,
		Elastic:  deps.Elastic,
		MinIO:    deps.MinIO,
		Sessions: cache.NewSessionCache(deps.Redis),
		Gateway:  payment.StripeGateway{},
		Mailer:   utils.NewMailer(cfg),
	}

	r := gin.Default()
	routes.Register(r, app)

	log.Println("✅ Server listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Server error: ", err)
	}
}

func setupOAuth(cfg config.Config) {
	if cfg.SessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET not set, OAuth disabled")
		return
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.MaxAge(86400 * 7)
	store.Options.HttpOnly = true
	gothic.Store = store

	var providers []goth.Provider
	if cfg.GoogleClientID != "" {
		providers = append(providers, google.New(
			cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.BaseURL+"/api/auth/google/callback",
			"email", "profile",
		))
	}
	if cfg.FacebookClientID != "" {
		providers = append(providers, facebook.New(
			cfg.FacebookClientID, cfg.FacebookClientSecret,
			cfg.BaseURL+"/api/auth/facebook/callback",
			"email",
		))
	}
	if len(providers) > 0 {
		goth.UseProviders(providers...)
		log.Println("✅ OAuth providers registered:", len(providers))
	}
}
