package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // COUNSEL_DATABASE_URL (optional, empty = in-memory store)
	GRPCAddr    string // COUNSEL_GRPC_ADDR (default ":9090")
	HTTPAddr    string // COUNSEL_HTTP_ADDR (default ":8080")
	NATSURL     string // COUNSEL_NATS_URL (optional, empty = no events)
	AuthToken   string // COUNSEL_AUTH_TOKEN (optional, empty = auth disabled)
	Seed        bool   // COUNSEL_SEED (default true; loads the bundled roster)

	// Sync settings
	SyncInterval   time.Duration // COUNSEL_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // COUNSEL_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // COUNSEL_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // COUNSEL_SYNC_S3_REGION (default "ap-south-1")
	SyncS3Key      string        // COUNSEL_SYNC_S3_KEY (default "counsel/roster.jsonl")
	SyncGitRepo    string        // COUNSEL_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // COUNSEL_SYNC_GIT_FILE (default "roster.jsonl")
	SyncGitBranch  string        // COUNSEL_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("COUNSEL_DATABASE_URL"),
		GRPCAddr:       envOrDefault("COUNSEL_GRPC_ADDR", ":9090"),
		HTTPAddr:       envOrDefault("COUNSEL_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("COUNSEL_NATS_URL"),
		AuthToken:      os.Getenv("COUNSEL_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("COUNSEL_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("COUNSEL_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("COUNSEL_SYNC_S3_REGION", "ap-south-1"),
		SyncS3Key:      envOrDefault("COUNSEL_SYNC_S3_KEY", "counsel/roster.jsonl"),
		SyncGitRepo:    os.Getenv("COUNSEL_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("COUNSEL_SYNC_GIT_FILE", "roster.jsonl"),
		SyncGitBranch:  envOrDefault("COUNSEL_SYNC_GIT_BRANCH", "main"),
	}

	seed, err := strconv.ParseBool(envOrDefault("COUNSEL_SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("COUNSEL_SEED: %w", err)
	}
	c.Seed = seed

	d, err := time.ParseDuration(envOrDefault("COUNSEL_SYNC_INTERVAL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("COUNSEL_SYNC_INTERVAL: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("COUNSEL_SYNC_INTERVAL: must not be negative, got %s", d)
	}
	c.SyncInterval = d

	return c, nil
}

// SyncEnabled reports whether any snapshot destination is configured.
func (c *Config) SyncEnabled() bool {
	return c.SyncInterval > 0 && (c.SyncS3Bucket != "" || c.SyncGitRepo != "")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
