package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultMetaGraphURL = "https://graph.facebook.com/v18.0"
	DefaultTikTokAPIURL = "https://business-api.tiktok.com/open_api/v1.3"
)

// Config guarda só a infraestrutura. Credenciais de pixel/webhook ficam na
// tabela settings e são lidas a cada requisição.
type Config struct {
	Port                string
	Environment         string
	LogLevel            string
	DatabaseURL         string
	AMQPURL             string
	MetaGraphURL        string
	TikTokAPIURL        string
	WorkerConcurrency   int
	WorkerQueueSize     int
	WebhookMaxBodyBytes int64
	CORSAllowedOrigins  []string
	// RunMigrations só para ambiente local: em produção o schema é do CRM.
	RunMigrations bool
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		MetaGraphURL: strings.TrimRight(getEnv("META_GRAPH_URL", DefaultMetaGraphURL), "/"),
		TikTokAPIURL: strings.TrimRight(getEnv("TIKTOK_API_URL", DefaultTikTokAPIURL), "/"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL é obrigatório")
	}

	var err error
	if cfg.WorkerConcurrency, err = getEnvInt("WORKER_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.WorkerQueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", 100); err != nil {
		return nil, err
	}
	maxBody, err := getEnvInt("WEBHOOK_MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	cfg.WebhookMaxBodyBytes = int64(maxBody)

	cfg.RunMigrations, err = strconv.ParseBool(getEnv("RUN_MIGRATIONS", "false"))
	if err != nil {
		return nil, fmt.Errorf("RUN_MIGRATIONS inválido: %w", err)
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s inválido (%q): %w", key, raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s deve ser positivo", key)
	}
	return v, nil
}
