package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL = %s, want 1h", cfg.TokenTTL)
	}
	if cfg.DBTimeout != 5*time.Second {
		t.Fatalf("DBTimeout = %s, want 5s", cfg.DBTimeout)
	}
	if cfg.UsersRequireAuth {
		t.Fatal("UsersRequireAuth should default to false")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("USERS_REQUIRE_AUTH", "true")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != 15*time.Minute || cfg.DBMaxOpenConns != 3 || !cfg.UsersRequireAuth {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestNewConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}
}

func TestNewConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "an hour")

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for unparsable TOKEN_TTL")
	}
}

func TestNewConfigRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "-5m")

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for negative TOKEN_TTL")
	}
}

func TestNewConfigWithoutEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := NewConfig(); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}
}

func TestNewConfigRejectsBrokenEnvFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	malformed := t.TempDir()
	if err := os.WriteFile(filepath.Join(malformed, ".env"), []byte("FOO=\"unterminated\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	unreadable := t.TempDir()
	if err := os.Mkdir(filepath.Join(unreadable, ".env"), 0o700); err != nil {
		t.Fatalf("failed to create .env directory: %v", err)
	}

	for _, dir := range []string{malformed, unreadable} {
		chdir(t, dir)
		if _, err := NewConfig(); err == nil {
			t.Fatalf("expected error for broken .env in %s", dir)
		}
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}
