package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lendforge/lending-forecast/pkg/constants"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "plain bytes", input: "1024", expected: 1024},
		{name: "bytes suffix", input: "512B", expected: 512},
		{name: "kilobytes", input: "256K", expected: 256 * 1024},
		{name: "kilobytes long", input: "256KB", expected: 256 * 1024},
		{name: "megabytes", input: "10M", expected: 10 * 1024 * 1024},
		{name: "gigabytes", input: "1G", expected: 1024 * 1024 * 1024},
		{name: "lowercase", input: "2m", expected: 2 * 1024 * 1024},
		{name: "surrounding space", input: "  64K  ", expected: 64 * 1024},
		{name: "empty uses default", input: "", expected: constants.DefaultMaxBodySizeBytes},
		{name: "unknown unit", input: "10Q", wantErr: true},
		{name: "no digits", input: "KB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("BodySizeBytes() = %d", cfg.BodySizeBytes())
	}
	if cfg.SessionTTLDuration() != 4*time.Hour {
		t.Errorf("SessionTTLDuration() = %s", cfg.SessionTTLDuration())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() on a missing file should fall back to defaults, got %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %s", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := `address: ":9090"
maxBodySize: 1M
sessionTTL: 30m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 1024*1024 {
		t.Errorf("BodySizeBytes() = %d", cfg.BodySizeBytes())
	}
	if cfg.SessionTTLDuration() != 30*time.Minute {
		t.Errorf("SessionTTLDuration() = %s", cfg.SessionTTLDuration())
	}
}

func TestLoadConfigInvalidTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("sessionTTL: soon\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject an unparseable sessionTTL")
	}
}
