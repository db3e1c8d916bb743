package desk

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"IVD_ADDR", "IVD_CATALOG", "IVD_DRAFT_TTL", "IVD_RATE", "IVD_BURST", "IVD_EXECUTOR_URL", "IVD_ORDER_LOG", "IVD_CURRENCY"} {
		t.Setenv(key, "")
	}
	got := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if got != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want %+v", got, DefaultConfig())
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	for _, key := range []string{"IVD_ADDR", "IVD_DRAFT_TTL", "IVD_RATE", "IVD_BURST"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	file := filepath.Join(t.TempDir(), "test.env")
	content := "IVD_ADDR=:9090\nIVD_DRAFT_TTL=2m\nIVD_RATE=2.5\nIVD_BURST=oops\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := LoadConfig(file)
	if got.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", got.Addr)
	}
	if got.DraftTTL != 2*time.Minute {
		t.Errorf("DraftTTL = %v, want 2m", got.DraftTTL)
	}
	if got.Rate != 2.5 {
		t.Errorf("Rate = %v, want 2.5", got.Rate)
	}
	if got.Burst != DefaultConfig().Burst {
		t.Errorf("Burst = %d, want the default for an invalid value", got.Burst)
	}
}
