// Package server implements the HTTP intake surface of the Nivada
// document service.
//
// This file defines the Go structs that correspond to the YAML
// configuration file. Strict decoding (KnownFields) turns typos into
// startup errors instead of silently ignored settings.

package server

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nivadahq/nivada/pkg/extract"
)

// Config is the top-level structure of the service configuration file.
// Every field has a usable zero-value default so the service runs with
// no file at all.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	// MaxUploadMB caps each multipart upload. Scanned case files run a
	// few MB per document; 25 leaves generous headroom.
	MaxUploadMB int `yaml:"max_upload_mb"`
	// RequestTimeoutSec bounds one intake request end to end, including
	// OCR. OCR on a long scanned GR dominates this budget.
	RequestTimeoutSec int `yaml:"request_timeout_sec"`
	// Sensitive switches previews to redacted mode (Aadhaar/PAN/mobile
	// masking).
	Sensitive bool `yaml:"sensitive"`

	Extract ExtractConfig `yaml:"extract"`
	OCR     OCRConfig     `yaml:"ocr"`
}

// ExtractConfig tunes the adequacy policy of the extraction cascade.
type ExtractConfig struct {
	MinLen        int   `yaml:"min_len"`
	OCRMinLen     int   `yaml:"ocr_min_len"`
	RequireScript *bool `yaml:"require_script"`
}

// OCRConfig configures the rasterizer and recognizer capabilities.
type OCRConfig struct {
	PdftoppmBin string   `yaml:"pdftoppm_bin"`
	Languages   []string `yaml:"languages"`
	Scale       int      `yaml:"scale"`
}

// LoadConfig reads and parses the YAML configuration file from the given
// path. Environment variables in the file are expanded before decoding.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read configuration file '%s': %w", path, err)
		}

		expanded := os.ExpandEnv(string(data))

		decoder := yaml.NewDecoder(strings.NewReader(expanded))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Policy maps the extract section onto the pipeline adequacy policy.
func (c *Config) Policy() extract.Policy {
	p := extract.DefaultPolicy()
	p.MinLen = c.Extract.MinLen
	p.OCRMinLen = c.Extract.OCRMinLen
	if c.Extract.RequireScript != nil {
		p.RequireScript = *c.Extract.RequireScript
	}
	return p
}

// CapabilityConfig maps the ocr section onto provider resolution.
func (c *Config) CapabilityConfig() extract.CapabilityConfig {
	return extract.CapabilityConfig{
		PdftoppmBin: c.OCR.PdftoppmBin,
		Languages:   c.OCR.Languages,
		Scale:       c.OCR.Scale,
	}
}

func (c *Config) applyDefaults() {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 25
	}
	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = 120
	}
	if c.Extract.MinLen <= 0 {
		c.Extract.MinLen = 50
	}
	if c.Extract.OCRMinLen <= 0 {
		c.Extract.OCRMinLen = 80
	}
}
