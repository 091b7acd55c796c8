package config

import "testing"

func TestLoadDefaultsForLocalDevelopment(t *testing.T) {
	t.Setenv("VITRINE_ENV", "dev")
	t.Setenv("VITRINE_TOKEN_SECRET", "")
	t.Setenv("VITRINE_ADMIN_PASSWORD", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Auth.TokenSecret != "vitrine-local-dev" {
		t.Fatalf("expected local fallback secret, got %q", cfg.Auth.TokenSecret)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "data/vitrine" {
		t.Fatalf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.Uploads.Root != "data/uploads" {
		t.Fatalf("expected default upload root, got %q", cfg.Uploads.Root)
	}
}

func TestLoadRequiresTokenSecretOutsideLocal(t *testing.T) {
	t.Setenv("VITRINE_ENV", "production")
	t.Setenv("VITRINE_TOKEN_SECRET", "")
	t.Setenv("VITRINE_ADMIN_PASSWORD", "hunter2")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing token secret in production")
	}
}

func TestLoadRequiresAdminPasswordOutsideLocal(t *testing.T) {
	t.Setenv("VITRINE_ENV", "production")
	t.Setenv("VITRINE_TOKEN_SECRET", "secret")
	t.Setenv("VITRINE_ADMIN_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing admin password in production")
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("VITRINE_ENV", "dev")
	t.Setenv("VITRINE_PORT", "70000")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
