package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/vitrine-cms/vitrine/internal/adapters/sqlite"
	"github.com/vitrine-cms/vitrine/internal/app/services"
	"github.com/vitrine-cms/vitrine/internal/config"
	"github.com/vitrine-cms/vitrine/internal/db"
	"github.com/vitrine-cms/vitrine/internal/server"
	"github.com/vitrine-cms/vitrine/internal/server/routes"
	"github.com/vitrine-cms/vitrine/internal/uploads"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if err := run(log); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IsLocalDevelopment() && cfg.Auth.TokenSecret == "vitrine-local-dev" {
		slog.Warn("VITRINE_TOKEN_SECRET not set, using local development fallback")
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	sessions := services.NewSessionAuthority([]byte(cfg.Auth.TokenSecret))
	identity := services.NewIdentityService(sqlite.NewIdentityStore(database), sessions)
	if err := identity.Seed(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin identity: %w", err)
	}

	ingestor, err := uploads.NewIngestor(cfg.Uploads.Root)
	if err != nil {
		return fmt.Errorf("failed to prepare upload storage: %w", err)
	}

	var notifier services.InquiryNotifier
	webhook, err := services.NewWebhookNotifier(cfg.Inquiries.WebhookEndpoint, "", log)
	if err != nil {
		return fmt.Errorf("failed to configure inquiry webhook: %w", err)
	}
	if webhook != nil {
		notifier = webhook
	}
	inquiries := services.NewInquiryService(sqlite.NewInquiryStore(database), notifier, log)

	srv := server.New(log)
	srv.RegisterRouter(routes.NewAuthRoutes(identity, sessions, cfg.Auth.SecureCookie))
	srv.RegisterRouter(routes.NewPageRoutes(sessions))
	srv.RegisterRouter(routes.NewSectionRoutes(sqlite.NewSectionStore(database), sessions))
	srv.RegisterRouter(routes.NewCollectionRoutes("gallery", sqlite.NewGalleryStore(database), sessions))
	srv.RegisterRouter(routes.NewCollectionRoutes("portfolio", sqlite.NewPortfolioStore(database), sessions))
	srv.RegisterRouter(routes.NewInquiryRoutes(inquiries, sessions))
	srv.RegisterRouter(routes.NewUploadRoutes(ingestor, sessions))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting server", "port", cfg.Server.Port)
	return srv.Start(addr)
}
