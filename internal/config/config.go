// Package config provides configuration loading and structs for the docsift server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	OCR       OCRConfig       `yaml:"ocr"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Search    SearchConfig    `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// OCRConfig holds settings for the external OCR engine.
type OCRConfig struct {
	TesseractPath      string `yaml:"tesseract_path"`
	PdftoppmPath       string `yaml:"pdftoppm_path"`
	Language           string `yaml:"language"`
	DPI                int    `yaml:"dpi"`
	MinTextLength      int    `yaml:"min_text_length"`
	PageTimeoutSeconds int    `yaml:"page_timeout_seconds"`
}

// EmbeddingConfig holds ONNX embedder settings. An empty ModelPath selects the
// deterministic mock embedder (development and tests only).
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// IngestConfig holds chunking and upload settings.
type IngestConfig struct {
	ChunkSize            int `yaml:"chunk_size"`
	ChunkOverlap         int `yaml:"chunk_overlap"`
	UploadTimeoutSeconds int `yaml:"upload_timeout_seconds"`
}

// SearchConfig holds result-count settings.
type SearchConfig struct {
	DefaultTopK int `yaml:"default_top_k"`
	MaxTopK     int `yaml:"max_top_k"`
}

// Load reads and parses the config file at path, then applies environment
// overrides and defaults. A .env file in the working directory is loaded
// first (best-effort) so container and dev setups can override paths without
// editing the YAML.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns a default config when path is
// empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	_ = godotenv.Load()
	var cfg Config
	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides overlays DOCSIFT_* environment variables onto cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCSIFT_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DOCSIFT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DOCSIFT_TESSERACT"); v != "" {
		cfg.OCR.TesseractPath = v
	}
	if v := os.Getenv("DOCSIFT_PDFTOPPM"); v != "" {
		cfg.OCR.PdftoppmPath = v
	}
	if v := os.Getenv("DOCSIFT_MODEL"); v != "" {
		cfg.Embedding.ModelPath = v
	}
}
