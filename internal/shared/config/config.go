package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Env               string        `yaml:"env"`
	GenerationBaseURL string        `yaml:"generationBaseURL"`
	GenerationTimeout time.Duration `yaml:"-"`
	OCRLanguages      []string      `yaml:"-"`
	OCRTessdataPrefix string        `yaml:"ocrTessdataPrefix"`
	OCRMinHeight      int           `yaml:"ocrMinHeight"`
	StagingDir        string        `yaml:"stagingDir"`
	LogLevel          string        `yaml:"logLevel"`
	Port              string        `yaml:"port"`
	CORSAllowOrigin   []string      `yaml:"-"`
}

// fileConfig mirrors the YAML layout; list and duration values are kept as
// strings so the file and the environment share one parser.
type fileConfig struct {
	Config                   `yaml:",inline"`
	GenerationTimeoutSeconds int    `yaml:"generationTimeoutSeconds"`
	OCRLanguages             string `yaml:"ocrLanguages"`
	CORSAllowOrigins         string `yaml:"corsAllowOrigins"`
}

const (
	defaultBaseURL      = "http://127.0.0.1:5001"
	defaultOCRLanguages = "eng"
	defaultOCRMinHeight = 1000
	defaultPort         = "5001"
)

// Load reads configuration from environment variables with sensible defaults.
// When COVERLETTER_CONFIG names a YAML file, its values are used as the base
// and environment variables override them.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("COVERLETTER_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	timeoutSeconds, err := getEnvInt("GENERATION_TIMEOUT_SECONDS", fc.GenerationTimeoutSeconds)
	if err != nil {
		return Config{}, err
	}
	minHeight, err := getEnvInt("OCR_MIN_HEIGHT", orInt(fc.OCRMinHeight, defaultOCRMinHeight))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:               normalizeEnv(getEnv("ENV", orString(fc.Env, "dev"))),
		GenerationBaseURL: strings.TrimRight(getEnv("GENERATION_BASE_URL", orString(fc.GenerationBaseURL, defaultBaseURL)), "/"),
		GenerationTimeout: time.Duration(timeoutSeconds) * time.Second,
		OCRLanguages:      splitAndTrim(getEnv("OCR_LANGUAGES", orString(fc.OCRLanguages, defaultOCRLanguages))),
		OCRTessdataPrefix: getEnv("OCR_TESSDATA_PREFIX", fc.OCRTessdataPrefix),
		OCRMinHeight:      minHeight,
		StagingDir:        getEnv("STAGING_DIR", orString(fc.StagingDir, os.TempDir())),
		LogLevel:          getEnv("LOG_LEVEL", orString(fc.LogLevel, "info")),
		Port:              getEnv("PORT", orString(fc.Port, defaultPort)),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", fc.CORSAllowOrigins)),
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if !strings.HasPrefix(cfg.GenerationBaseURL, "http://") && !strings.HasPrefix(cfg.GenerationBaseURL, "https://") {
		return fmt.Errorf("config: GENERATION_BASE_URL must be an http(s) URL, got %q", cfg.GenerationBaseURL)
	}
	if cfg.GenerationTimeout < 0 {
		return fmt.Errorf("config: GENERATION_TIMEOUT_SECONDS must be >= 0")
	}
	if cfg.OCRMinHeight < 0 {
		return fmt.Errorf("config: OCR_MIN_HEIGHT must be >= 0")
	}
	if len(cfg.OCRLanguages) == 0 {
		return fmt.Errorf("config: OCR_LANGUAGES must name at least one language")
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func orString(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
