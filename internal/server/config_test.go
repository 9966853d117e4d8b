package server

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nivada.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.MaxUploadMB != 25 || cfg.RequestTimeoutSec != 120 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	p := cfg.Policy()
	if p.MinLen != 50 || p.OCRMinLen != 80 || !p.RequireScript {
		t.Errorf("default policy wrong: %+v", p)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("NIVADA_TEST_ADDR", ":9999")
	path := writeConfig(t, "http_addr: ${NIVADA_TEST_ADDR}\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("http_addr = %q", cfg.HTTPAddr)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "http_adr: :8080\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("typo'd field must be a startup error")
	}
}

func TestLoadConfigPolicyOverrides(t *testing.T) {
	path := writeConfig(t, `
extract:
  min_len: 30
  ocr_min_len: 60
  require_script: false
ocr:
  languages: [eng]
  scale: 3
sensitive: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Policy()
	if p.MinLen != 30 || p.OCRMinLen != 60 || p.RequireScript {
		t.Errorf("policy = %+v", p)
	}
	cc := cfg.CapabilityConfig()
	if len(cc.Languages) != 1 || cc.Languages[0] != "eng" || cc.Scale != 3 {
		t.Errorf("capability config = %+v", cc)
	}
	if !cfg.Sensitive {
		t.Error("sensitive not read")
	}
}
