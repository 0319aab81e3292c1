package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/robopatrol/patrolsdk"
)

// patrolctl config.toml key mapping to client runtime settings.
type fileConfig struct {
	Host                string `toml:"host"`
	Port                int    `toml:"port"`
	Transport           string `toml:"transport"`
	WebsocketPath       string `toml:"websocket_path"`
	ConnectionTimeoutMS int64  `toml:"connection_timeout_ms"`
	RequestTimeoutMS    int64  `toml:"request_timeout_ms"`
}

type runtimeConfig struct {
	Host string
	Port int
	Opts patrolsdk.Options
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		Host: "192.168.1.106",
		Port: 30000,
		Opts: patrolsdk.DefaultOptions(),
	}
}

// patrolctl loader for TOML config with default overlay.
func loadRuntimeConfig(path string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load patrolctl config: %w", err)
	}

	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("transport") {
		kind := patrolsdk.TransportKind(strings.TrimSpace(raw.Transport))
		switch kind {
		case patrolsdk.TransportTCP, patrolsdk.TransportWebsocket:
			cfg.Opts.Transport = kind
		default:
			return runtimeConfig{}, fmt.Errorf(
				"load patrolctl config: unsupported transport %q (expected tcp or websocket)",
				raw.Transport,
			)
		}
	}
	if meta.IsDefined("websocket_path") {
		cfg.Opts.WebsocketPath = strings.TrimSpace(raw.WebsocketPath)
	}
	if meta.IsDefined("connection_timeout_ms") {
		cfg.Opts.ConnectionTimeout = time.Duration(raw.ConnectionTimeoutMS) * time.Millisecond
	}
	if meta.IsDefined("request_timeout_ms") {
		cfg.Opts.RequestTimeout = time.Duration(raw.RequestTimeoutMS) * time.Millisecond
	}

	if cfg.Host == "" {
		return runtimeConfig{}, fmt.Errorf("load patrolctl config: host must not be empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return runtimeConfig{}, fmt.Errorf("load patrolctl config: invalid port %d", cfg.Port)
	}

	cfg.Opts = cfg.Opts.WithDefaults()
	return cfg, nil
}
