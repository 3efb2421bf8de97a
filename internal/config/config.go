package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	S3       S3Config
	Kafka    KafkaConfig
	Consul   ConsulConfig
	Quote    QuoteConfig
}

type ServerConfig struct {
	Port            int
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int
}

// RedisConfig is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config is disabled when Endpoint is empty.
type S3Config struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	Region         string
	UseSSL         bool
	PresignTTL     time.Duration
}

// KafkaConfig is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers         string
	BlogEventsTopic string
}

// ConsulConfig is disabled when Addr is empty.
type ConsulConfig struct {
	Addr        string
	Token       string
	ServiceName string
	ServiceHost string
}

type QuoteConfig struct {
	PrimaryURL  string
	FallbackURL string
	Timeout     time.Duration
}

// Load validates the environment and builds a Config from it.
func Load() (*Config, error) {
	if err := ValidateEnv(RequiredVars); err != nil {
		return nil, err
	}
	if err := ValidateJWTSecret(); err != nil {
		return nil, err
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        port,
			GinMode:     GetEnvOrDefault("GIN_MODE", "release"),
			CORSOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		S3: S3Config{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Bucket:         GetEnvOrDefault("S3_BUCKET_NAME", "inkwell-media"),
			Region:         GetEnvOrDefault("S3_REGION", "us-east-1"),
		},
		Kafka: KafkaConfig{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			BlogEventsTopic: GetEnvOrDefault("KAFKA_TOPIC_BLOG_EVENTS", "blog-events"),
		},
		Consul: ConsulConfig{
			Addr:        os.Getenv("CONSUL_HTTP_ADDR"),
			Token:       os.Getenv("CONSUL_HTTP_TOKEN"),
			ServiceName: GetEnvOrDefault("SERVICE_NAME", "inkwell-api"),
			ServiceHost: GetEnvOrDefault("SERVICE_HOST", "localhost"),
		},
		Quote: QuoteConfig{
			PrimaryURL:  GetEnvOrDefault("QUOTE_PRIMARY_URL", "https://api.quotable.io/random"),
			FallbackURL: GetEnvOrDefault("QUOTE_FALLBACK_URL", "https://zenquotes.io/api/random"),
		},
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", 10 * time.Second, &cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", 30 * time.Second, &cfg.Server.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", time.Minute, &cfg.Server.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", 10 * time.Second, &cfg.Server.ShutdownTimeout},
		{"DB_CONN_MAX_LIFETIME", 30 * time.Minute, &cfg.Database.ConnMaxLifetime},
		{"JWT_TTL", 24 * time.Hour, &cfg.Auth.JWTTTL},
		{"S3_PRESIGN_TTL", 15 * time.Minute, &cfg.S3.PresignTTL},
		{"QUOTE_TIMEOUT", 5 * time.Second, &cfg.Quote.Timeout},
	}
	for _, d := range durations {
		if *d.dest, err = envDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"DB_MAX_OPEN_CONNS", 25, &cfg.Database.MaxOpenConns},
		{"DB_MAX_IDLE_CONNS", 5, &cfg.Database.MaxIdleConns},
		{"BCRYPT_COST", 10, &cfg.Auth.BcryptCost},
		{"REDIS_DB", 0, &cfg.Redis.DB},
	}
	for _, i := range ints {
		if *i.dest, err = envInt(i.key, i.def); err != nil {
			return nil, err
		}
	}

	if cfg.Database.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.S3.UseSSL, err = envBool("S3_USE_SSL", false); err != nil {
		return nil, err
	}

	if cfg.S3.PublicEndpoint == "" {
		cfg.S3.PublicEndpoint = cfg.S3.Endpoint
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
