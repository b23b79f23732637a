package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8000")
	}
	if cfg.MongoDBName != "mosqueData" {
		t.Fatalf("MongoDBName mismatch: got %q want %q", cfg.MongoDBName, "mosqueData")
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv mismatch: got %q want %q", cfg.AppEnv, "development")
	}
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("TOKEN_SECRET", "test-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing MONGO_URI")
	}
}

func TestLoadConfigRequiresTokenSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing TOKEN_SECRET")
	}
}

func TestLoadConfigHonorsTimeoutOverride(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got := cfg.HTTPReadTimeout.Seconds(); got != 5 {
		t.Fatalf("HTTPReadTimeout mismatch: got %vs want 5s", got)
	}
}
