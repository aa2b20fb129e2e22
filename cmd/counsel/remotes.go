package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// RemotesConfig holds all named remotes and tracks which one is active.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named roster server profile.
type Remote struct {
	URL      string `toml:"url"`
	GRPCAddr string `toml:"grpc_addr,omitempty"`
	Token    string `toml:"token,omitempty"`
	NATSURL  string `toml:"nats_url,omitempty"`
}

func remoteConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "counsel")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

func loadRemotesConfig() (RemotesConfig, error) {
	path, err := remoteConfigPath()
	if err != nil {
		return RemotesConfig{}, err
	}
	var cfg RemotesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return RemotesConfig{Remotes: map[string]Remote{}}, nil
		}
		return RemotesConfig{}, err
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	return cfg, nil
}

func saveRemotesConfig(cfg RemotesConfig) error {
	path, err := remoteConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func loadActiveRemote() Remote {
	cfg, err := loadRemotesConfig()
	if err != nil || cfg.Active == "" {
		return Remote{}
	}
	return cfg.Remotes[cfg.Active]
}

// Endpoints are the addresses and credentials the CLI uses to reach a
// roster server.
type Endpoints struct {
	HTTPURL  string
	GRPCAddr string
	Token    string
	NATSURL  string
}

// resolveEndpoints takes each setting from the environment, then from the
// remote, then from the built-in default.
func resolveEndpoints(getenv func(string) string, r Remote) Endpoints {
	pick := func(env, remote, fallback string) string {
		if v := getenv(env); v != "" {
			return v
		}
		if remote != "" {
			return remote
		}
		return fallback
	}
	return Endpoints{
		HTTPURL:  pick("COUNSEL_HTTP_URL", r.URL, "http://localhost:8080"),
		GRPCAddr: pick("COUNSEL_SERVER", r.GRPCAddr, "localhost:9090"),
		Token:    pick("COUNSEL_TOKEN", r.Token, ""),
		NATSURL:  pick("COUNSEL_NATS_URL", r.NATSURL, ""),
	}
}

// defaultEndpoints is resolved once per process; flag defaults use it.
var defaultEndpoints = sync.OnceValue(func() Endpoints {
	return resolveEndpoints(os.Getenv, loadActiveRemote())
})

// maskToken keeps the first eight characters of a token visible.
func maskToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + strings.Repeat("*", len(token)-8)
}
