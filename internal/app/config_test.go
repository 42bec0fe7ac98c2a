package app

import (
	"os"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("IDENTITY_PROVIDER", " Local ")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg, err := parseConfig()
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.IdentityProvider != IdentityProviderLocal {
		t.Fatalf("expected normalized provider, got %q", cfg.IdentityProvider)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m access ttl, got %s", cfg.AccessTokenTTL)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigins)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr())
	}
	if cfg.DB.Driver != "postgres" {
		t.Fatalf("expected postgres default, got %q", cfg.DB.Driver)
	}
}

func TestParseConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "local_without_secret", env: map[string]string{"OPENAI_API_KEY": "k"}},
		{name: "hosted_without_url", env: map[string]string{"IDENTITY_PROVIDER": "hosted", "OPENAI_API_KEY": "k"}},
		{name: "unknown_identity", env: map[string]string{"IDENTITY_PROVIDER": "ldap", "OPENAI_API_KEY": "k"}},
		{name: "openai_without_key", env: map[string]string{"JWT_SECRET_KEY": "s"}},
		{name: "gemini_without_project", env: map[string]string{"JWT_SECRET_KEY": "s", "SCORER_PROVIDER": "gemini"}},
		{name: "unknown_scorer", env: map[string]string{"JWT_SECRET_KEY": "s", "SCORER_PROVIDER": "claude"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"JWT_SECRET_KEY", "OPENAI_API_KEY", "IDENTITY_PROVIDER", "SCORER_PROVIDER", "IDENTITY_URL", "IDENTITY_API_KEY", "GEMINI_PROJECT_ID"} {
				t.Setenv(k, "")
				_ = os.Unsetenv(k)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := parseConfig(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
