package config

import (
	"testing"
	"time"
)

// allEnvVars lists every variable Load reads; each test starts from a clean slate.
var allEnvVars = []string{
	"COUNSEL_DATABASE_URL", "COUNSEL_GRPC_ADDR", "COUNSEL_HTTP_ADDR", "COUNSEL_NATS_URL",
	"COUNSEL_AUTH_TOKEN", "COUNSEL_SEED",
	"COUNSEL_SYNC_INTERVAL", "COUNSEL_SYNC_S3_BUCKET", "COUNSEL_SYNC_S3_ENDPOINT",
	"COUNSEL_SYNC_S3_REGION", "COUNSEL_SYNC_S3_KEY", "COUNSEL_SYNC_GIT_REPO",
	"COUNSEL_SYNC_GIT_FILE", "COUNSEL_SYNC_GIT_BRANCH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantErr      bool
		wantGRPCAddr string
		wantHTTPAddr string
		wantNATSURL  string
		wantSeed     bool
	}{
		{
			name:         "Defaults",
			env:          map[string]string{},
			wantGRPCAddr: ":9090",
			wantHTTPAddr: ":8080",
			wantSeed:     true,
		},
		{
			name: "Custom",
			env: map[string]string{
				"COUNSEL_DATABASE_URL": "postgres://db:5432/counsel",
				"COUNSEL_GRPC_ADDR":    ":5050",
				"COUNSEL_HTTP_ADDR":    ":3000",
				"COUNSEL_NATS_URL":     "nats://localhost:4222",
				"COUNSEL_SEED":         "false",
			},
			wantGRPCAddr: ":5050",
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
		},
		{
			name:    "BadSeed",
			env:     map[string]string{"COUNSEL_SEED": "sometimes"},
			wantErr: true,
		},
		{
			name:    "NegativeInterval",
			env:     map[string]string{"COUNSEL_SYNC_INTERVAL": "-1m"},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["COUNSEL_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["COUNSEL_DATABASE_URL"])
			}
			if cfg.GRPCAddr != tc.wantGRPCAddr {
				t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, tc.wantGRPCAddr)
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
			if cfg.Seed != tc.wantSeed {
				t.Errorf("Seed = %v, want %v", cfg.Seed, tc.wantSeed)
			}
		})
	}
}

func TestLoadSyncDefaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 3*time.Minute {
		t.Errorf("SyncInterval = %v, want 3m", cfg.SyncInterval)
	}
	if cfg.SyncS3Region != "ap-south-1" {
		t.Errorf("SyncS3Region = %q, want %q", cfg.SyncS3Region, "ap-south-1")
	}
	if cfg.SyncS3Key != "counsel/roster.jsonl" {
		t.Errorf("SyncS3Key = %q, want %q", cfg.SyncS3Key, "counsel/roster.jsonl")
	}
	if cfg.SyncGitFile != "roster.jsonl" {
		t.Errorf("SyncGitFile = %q, want %q", cfg.SyncGitFile, "roster.jsonl")
	}
	if cfg.SyncGitBranch != "main" {
		t.Errorf("SyncGitBranch = %q, want %q", cfg.SyncGitBranch, "main")
	}
	if cfg.SyncEnabled() {
		t.Error("sync should be disabled without destinations")
	}
}

func TestLoadSyncCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("COUNSEL_SYNC_INTERVAL", "10m")
	t.Setenv("COUNSEL_SYNC_S3_BUCKET", "my-bucket")
	t.Setenv("COUNSEL_SYNC_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("COUNSEL_SYNC_S3_REGION", "eu-west-1")
	t.Setenv("COUNSEL_SYNC_S3_KEY", "custom/key.jsonl")
	t.Setenv("COUNSEL_SYNC_GIT_REPO", "/tmp/repo")
	t.Setenv("COUNSEL_SYNC_GIT_FILE", "custom.jsonl")
	t.Setenv("COUNSEL_SYNC_GIT_BRANCH", "backup")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 10*time.Minute {
		t.Errorf("SyncInterval = %v, want 10m", cfg.SyncInterval)
	}
	if cfg.SyncS3Bucket != "my-bucket" {
		t.Errorf("SyncS3Bucket = %q", cfg.SyncS3Bucket)
	}
	if cfg.SyncS3Endpoint != "http://minio:9000" {
		t.Errorf("SyncS3Endpoint = %q", cfg.SyncS3Endpoint)
	}
	if cfg.SyncS3Region != "eu-west-1" {
		t.Errorf("SyncS3Region = %q", cfg.SyncS3Region)
	}
	if cfg.SyncS3Key != "custom/key.jsonl" {
		t.Errorf("SyncS3Key = %q", cfg.SyncS3Key)
	}
	if cfg.SyncGitRepo != "/tmp/repo" {
		t.Errorf("SyncGitRepo = %q", cfg.SyncGitRepo)
	}
	if cfg.SyncGitFile != "custom.jsonl" {
		t.Errorf("SyncGitFile = %q", cfg.SyncGitFile)
	}
	if cfg.SyncGitBranch != "backup" {
		t.Errorf("SyncGitBranch = %q", cfg.SyncGitBranch)
	}
	if !cfg.SyncEnabled() {
		t.Error("sync should be enabled")
	}
}

func TestLoadSyncInvalidInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("COUNSEL_SYNC_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid COUNSEL_SYNC_INTERVAL")
	}
}

func TestLoadSyncDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("COUNSEL_SYNC_INTERVAL", "0s")
	t.Setenv("COUNSEL_SYNC_S3_BUCKET", "my-bucket")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncInterval != 0 {
		t.Errorf("SyncInterval = %v, want 0 (disabled)", cfg.SyncInterval)
	}
	if cfg.SyncEnabled() {
		t.Error("a zero interval disables sync")
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
