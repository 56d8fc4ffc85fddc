package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/swiper/pkg/errors"
)

// isolate points every lookup at an empty temp directory. Empty env vars
// count as unset for viper.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SWIPER_CONFIG", "")
	t.Setenv("SWIPER_UI_CELL_WIDTH", "")
	t.Setenv("SWIPER_UI_FRAME_RATE", "")
	t.Setenv("SWIPER_SERVER_ADDR", "")
	t.Setenv("SWIPER_DECK_DEFAULT_PATH", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.UI.CellWidth != DefaultCellWidth || s.UI.FrameRate != DefaultFrameRate {
		t.Errorf("UI = %+v", s.UI)
	}
	if s.Server.Addr != DefaultAddr || s.Deck.DefaultPath != "" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadFromXDGFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, "swiper"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[ui]\ncell_width = 10\n\n[deck]\ndefault_path = \"/tmp/deck.toml\"\n"
	if err := os.WriteFile(filepath.Join(dir, "swiper", "config.toml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.UI.CellWidth != 10 {
		t.Errorf("CellWidth = %d, want 10", s.UI.CellWidth)
	}
	if s.UI.FrameRate != DefaultFrameRate {
		t.Errorf("FrameRate = %d, want default", s.UI.FrameRate)
	}
	if s.Deck.DefaultPath != "/tmp/deck.toml" {
		t.Errorf("DefaultPath = %q", s.Deck.DefaultPath)
	}
}

func TestLoadExplicitFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SWIPER_CONFIG", path)
	t.Setenv("SWIPER_UI_FRAME_RATE", "30")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Server.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", s.Server.Addr)
	}
	if s.UI.FrameRate != 30 {
		t.Errorf("FrameRate = %d, want 30 from env", s.UI.FrameRate)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("SWIPER_UI_CELL_WIDTH", "0")

	_, err := Load()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(path, []byte("[ui\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SWIPER_CONFIG", path)

	if _, err := Load(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}
