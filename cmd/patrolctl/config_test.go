package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robopatrol/patrolsdk"
)

func TestLoadRuntimeConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patrolctl.toml")
	content := `
host = "10.0.0.9"
port = 31000
transport = "websocket"
websocket_path = "/patrol"
connection_timeout_ms = 2500
request_timeout_ms = 1500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "10.0.0.9" {
		t.Fatalf("unexpected host: %q", cfg.Host)
	}
	if cfg.Port != 31000 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.Opts.Transport != patrolsdk.TransportWebsocket {
		t.Fatalf("unexpected transport: %q", cfg.Opts.Transport)
	}
	if cfg.Opts.WebsocketPath != "/patrol" {
		t.Fatalf("unexpected websocket path: %q", cfg.Opts.WebsocketPath)
	}
	if cfg.Opts.ConnectionTimeout != 2500*time.Millisecond {
		t.Fatalf("unexpected connection timeout: %v", cfg.Opts.ConnectionTimeout)
	}
	if cfg.Opts.RequestTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected request timeout: %v", cfg.Opts.RequestTimeout)
	}
}

func TestLoadRuntimeConfigKeepsDefaultsWhenUnset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patrolctl.toml")
	if err := os.WriteFile(path, []byte(`host = "10.0.0.9"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadRuntimeConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	def := defaultRuntimeConfig()
	if cfg.Port != def.Port {
		t.Fatalf("port default not kept: %d", cfg.Port)
	}
	if cfg.Opts.Transport != patrolsdk.TransportTCP {
		t.Fatalf("transport default not kept: %q", cfg.Opts.Transport)
	}
	if cfg.Opts.RequestTimeout != 3*time.Second {
		t.Fatalf("request timeout default not kept: %v", cfg.Opts.RequestTimeout)
	}
}

func TestLoadRuntimeConfigRejectsBadTransport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patrolctl.toml")
	if err := os.WriteFile(path, []byte(`transport = "carrier-pigeon"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected transport validation error")
	}
}

func TestLoadRuntimeConfigRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patrolctl.toml")
	if err := os.WriteFile(path, []byte(`port = -1`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRuntimeConfig(path); err == nil {
		t.Fatalf("expected port validation error")
	}
}

func TestLoadWaypoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waypoints.json")
	content := `[
		{"mapId": 1, "posX": 0, "posY": 0, "angleYaw": 0},
		{"mapId": 1, "posX": 5, "posY": 0, "angleYaw": 1.57}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write waypoints: %v", err)
	}

	points, err := loadWaypoints(path)
	if err != nil {
		t.Fatalf("load waypoints: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].PosX != 5 || points[1].AngleYaw != 1.57 {
		t.Fatalf("unexpected point: %+v", points[1])
	}
}

func TestLoadWaypointsRejectsEmptyList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waypoints.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write waypoints: %v", err)
	}
	if _, err := loadWaypoints(path); err == nil {
		t.Fatalf("expected empty-list error")
	}
}
