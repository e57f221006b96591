package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/storage"
)

func TestNewSSHServerCreatesHostKeyDir(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_ed25519")

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath

	srv, err := NewSSHServer(cfg, NewRenderer(nil, core.ColorBackground, core.ColorText), nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, expected %q", srv.Addr(), cfg.Address)
	}
	if _, err := os.Stat(filepath.Dir(keyPath)); err != nil {
		t.Errorf("host key directory was not created: %v", err)
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.TickRate != 60 || cfg.IdleTimeout <= 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestPlayerName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"ana", "ana"},
		{"  bob ", "bob"},
		{"", AnonymousPlayer},
		{"   ", AnonymousPlayer},
		{strings.Repeat("x", 40), strings.Repeat("x", 32)},
		// 31 ASCII bytes then a 2-byte rune straddling the limit.
		{strings.Repeat("a", 31) + "é" + "zz", strings.Repeat("a", 31)},
	}

	for _, tc := range tests {
		if got := PlayerName(tc.in); got != tc.expected {
			t.Errorf("PlayerName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestPlayerNameFitsStore(t *testing.T) {
	name := PlayerName(strings.Repeat("é", 40))
	if _, err := storage.NormalizePlayer(name); err != nil {
		t.Errorf("PlayerName() = %q is not storable: %v", name, err)
	}
	if !utf8.ValidString(name) {
		t.Errorf("PlayerName() = %q is not valid UTF-8", name)
	}
}
