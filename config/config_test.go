package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("logging service name = %q, want %q", cfg.Logging.ServiceName, "svc")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa-lab"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: auto-qa
environment: staging
server:
  port: 9090
elevateai:
  api_token: tok-test
lifecycle:
  poll_interval: 2s
  wait_budget: 30s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.ElevateAI.APIToken != "tok-test" {
		t.Errorf("api token = %q", cfg.ElevateAI.APIToken)
	}
	if cfg.Lifecycle.PollInterval != 2*time.Second {
		t.Errorf("poll interval = %s", cfg.Lifecycle.PollInterval)
	}
	// Untouched fields keep their defaults.
	if cfg.Lifecycle.LanguageTag != "en-us" {
		t.Errorf("language tag = %q", cfg.Lifecycle.LanguageTag)
	}
	if cfg.ElevateAI.BaseURL == "" {
		t.Error("base URL default not applied")
	}
}

func TestLoadRequiresAPIToken(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: auto-qa\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if v := os.Getenv("ELEVATEAI_API_TOKEN"); v != "" {
		t.Skip("ELEVATEAI_API_TOKEN set in environment")
	}

	if _, err := Load(WithConfigFile(configPath)); err == nil {
		t.Error("Load() expected error without api token")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestFindFirstPrefersCmdDirectory(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/autoqa/config.yml": true,
		"./config.yml":            true,
	}}
	if got := findFirst(fs, configSearchPaths()); got != "./cmd/autoqa/config.yml" {
		t.Errorf("config file = %q", got)
	}
}

func TestFindFirstNoMatch(t *testing.T) {
	if got := findFirst(&mockFS{}, configSearchPaths()); got != "" {
		t.Errorf("config file = %q, want empty", got)
	}
}

func TestEnvKeys(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"ELEVATEAI_API_TOKEN", []string{"elevateai.api_token", "elevateai.api.token"}},
		{"SERVER_CORS_ALLOWED_ORIGINS", []string{
			"server.cors_allowed_origins",
			"server.cors.allowed_origins",
			"server.cors.allowed.origins",
		}},
		{"LIFECYCLE_POLL_INTERVAL", []string{"lifecycle.poll_interval", "lifecycle.poll.interval"}},
		{"ENVIRONMENT", []string{"environment"}},
		{"PAGER", []string{"pager"}},
	}
	for _, tc := range tests {
		got := envKeys(tc.name)
		if len(got) != len(tc.want) {
			t.Errorf("envKeys(%q) = %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("envKeys(%q)[%d] = %q, want %q", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/config.yml")(&lc)
	WithEnvFile("/path/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("FileSystem not set")
	}
	if lc.ConfigFile != "/path/config.yml" || lc.EnvFile != "/path/.env" {
		t.Errorf("paths = (%q, %q)", lc.ConfigFile, lc.EnvFile)
	}
}
