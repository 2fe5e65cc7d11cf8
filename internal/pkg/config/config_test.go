package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env, got %q", cfg.Env)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl: got %v", cfg.TokenTTL)
	}
	if !cfg.SeedDefaultData {
		t.Errorf("seeding should default to on")
	}
	if cfg.Mongo.Database != "taskmate" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "production",
		"JWT_SECRET":        "s3cret",
		"TOKEN_TTL":         "90m",
		"SEED_DEFAULT_DATA": "false",
		"REDIS_DB":          "3",
		"MONGO_URI":         "mongodb://db:27017",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Errorf("expected production env")
	}
	if cfg.JWTSecret != "s3cret" || cfg.TokenTTL != 90*time.Minute {
		t.Errorf("auth overrides not applied: %q %v", cfg.JWTSecret, cfg.TokenTTL)
	}
	if cfg.SeedDefaultData {
		t.Errorf("seeding should be off")
	}
	if cfg.Redis.DB != 3 || cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("store overrides not applied: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"TOKEN_TTL": "soon"}))
	if err == nil {
		t.Fatal("expected an error for an unparsable duration")
	}
}
