package config

import (
	"os"
	"strconv"
	"time"
)

// Config menampung seluruh konfigurasi aplikasi yang dipilih
// berdasarkan environment (APP_ENV: development, staging, production).
type Config struct {
	Env   string
	Debug bool

	AppPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MongoURI    string
	MongoDBName string

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigin string

	// Rate limiting per IP (request per menit). Hanya aktif di
	// staging/production, mengikuti profil environment.
	RateLimitEnabled bool
	RateLimitPerMin  int
}

var current *Config

// Load membangun Config dari APP_ENV + environment variables.
// Setiap profil punya default sendiri; env var selalu menang jika di-set.
func Load() *Config {
	env := getenv("APP_ENV", "development")

	cfg := &Config{
		Env:             env,
		AppPort:         getenv("APP_PORT", "8080"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUser:          getenv("DB_USER", "postgres"),
		DBPassword:      getenv("DB_PASSWORD", ""),
		DBName:          getenv("DB_NAME", "magang_umpar"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getenv("MONGO_DB_NAME", "magang_umpar"),
		CORSOrigin:      getenv("CORS_ORIGIN", "*"),
		RateLimitPerMin: getenvInt("RATE_LIMIT_PER_MIN", 100),
	}

	switch env {
	case "production":
		cfg.Debug = false
		cfg.JWTSecret = getenv("JWT_SECRET", "")
		cfg.JWTExpiry = getenvDuration("JWT_EXPIRY", 4*time.Hour)
		cfg.RateLimitEnabled = true
	case "staging":
		cfg.Debug = true
		cfg.JWTSecret = getenv("JWT_SECRET", "staging_secret_change_me")
		cfg.JWTExpiry = getenvDuration("JWT_EXPIRY", 24*time.Hour)
		cfg.RateLimitEnabled = true
	default:
		// development
		cfg.Debug = true
		cfg.JWTSecret = getenv("JWT_SECRET", "dev_secret_key_change_in_production")
		cfg.JWTExpiry = getenvDuration("JWT_EXPIRY", 7*24*time.Hour)
		cfg.RateLimitEnabled = false
	}

	current = cfg
	return cfg
}

// Current mengembalikan konfigurasi yang terakhir di-load.
// Dipakai oleh utils (mis. JWT) tanpa harus membawa Config ke mana-mana.
func Current() *Config {
	if current == nil {
		return Load()
	}
	return current
}

// IsProduction mengecek apakah environment saat ini production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
