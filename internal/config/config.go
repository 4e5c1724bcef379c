package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	StorePath string
	LLM       LLMConfig
	Export    ExportConfig
}

type LLMConfig struct {
	APIKey string
	Model  string
	// UseFake swaps in the canned offline client. Forced on when no API
	// key is configured outside production.
	UseFake bool
	RPS     float64
}

type ExportConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = ":8082"
	} else if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	storePath := strings.TrimSpace(os.Getenv("PAGE_STORE_PATH"))
	if storePath == "" {
		storePath = "data/pages.json"
	}

	return &Config{
		Port:      port,
		Env:       env,
		StorePath: storePath,
		LLM:       loadLLMConfig(env),
		Export:    loadExportConfig(env),
	}, nil
}

func loadLLMConfig(env string) LLMConfig {
	apiKey := firstNonEmpty(
		strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
	)
	useFake := parseBool(os.Getenv("LLM_USE_FAKE"), false)
	if apiKey == "" && !strings.EqualFold(env, "production") {
		useFake = true
	}
	rps := 0.0
	if raw := strings.TrimSpace(os.Getenv("LLM_RPS")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			rps = v
		}
	}
	return LLMConfig{
		APIKey:  apiKey,
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), "gemini-2.0-flash"),
		UseFake: useFake,
		RPS:     rps,
	}
}

func loadExportConfig(env string) ExportConfig {
	endpoint := resolveExportEndpoint(env)
	return ExportConfig{
		Enabled:   strings.EqualFold(strings.TrimSpace(env), "local") || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_BUCKET")), "pagecraft-exports"),
		UseSSL:    resolveExportUseSSL(env),
	}
}

func resolveExportEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_MINIO_ENDPOINT")), "minio:9000")
	}
	return strings.TrimSpace(os.Getenv("EXPORT_S3_ENDPOINT"))
}

func resolveExportUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	return parseBool(os.Getenv("EXPORT_S3_USE_SSL"), true)
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
