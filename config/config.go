package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

// Development defaults. Validate rejects them in production.
const (
	defaultJWTSecret     = "pos_kemasan_secret_key"
	defaultAdminPassword = "password123"
)

type Config struct {
	AppEnv     string
	AppPort    string
	MainRoutes string

	JWTSecret     string
	JWTExpiration time.Duration

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr      string
	RedisPassword  string
	ReportCacheTTL time.Duration

	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	MailFrom           string
	LowStockRecipients []string

	SnowflakeNode int64

	AdminEmail    string
	AdminPassword string

	AllowedOrigins map[string]bool
}

// Load membaca file .env lalu environment variable, dengan nilai default
// untuk setiap key.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using system environment variables")
	}

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		AppPort:    getEnv("APP_PORT", "5000"),
		MainRoutes: getEnv("MAIN_ROUTES", "/api"),

		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiration: getEnvAsDuration("JWT_EXPIRATION", 8*time.Hour),

		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "root"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "pos_kemasan"),
		DBDSN:          getEnv("DB_DSN", ""),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		ReportCacheTTL: getEnvAsDuration("REPORT_CACHE_TTL", time.Minute),

		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		MailFrom:           getEnv("MAIL_FROM", "noreply@pos-kemasan.local"),
		LowStockRecipients: getEnvAsList("LOW_STOCK_RECIPIENTS"),

		SnowflakeNode: int64(getEnvAsInt("SNOWFLAKE_NODE", 1)),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@pos.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),

		AllowedOrigins: loadAllowedOrigins(),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// Validate menolak secret bawaan ketika berjalan di production.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	if c.AdminPassword == "" || c.AdminPassword == defaultAdminPassword {
		return errors.New("config: ADMIN_PASSWORD must be set in production")
	}
	return nil
}

// getEnv membaca environment variable dengan nilai default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt membaca environment variable sebagai integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration menerima format "8h", "90s", atau angka dalam detik.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// loadAllowedOrigins memuat daftar origin yang diizinkan dari environment variable
func loadAllowedOrigins() map[string]bool {
	origins := getEnvAsList("ALLOWED_ORIGINS")
	if len(origins) == 0 {
		// Default origin frontend (vite dev server)
		return map[string]bool{
			"http://localhost:5173": true,
			"http://127.0.0.1:5173": true,
		}
	}

	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return allowed
}

func (c *Config) SetupCORS(app *fiber.App) {
	app.Use(func(ctx *fiber.Ctx) error {
		origin := ctx.Get("Origin")
		if c.AllowedOrigins[origin] {
			ctx.Set("Access-Control-Allow-Origin", origin)
			ctx.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			ctx.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			ctx.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if ctx.Method() == fiber.MethodOptions {
			return ctx.SendStatus(fiber.StatusNoContent)
		}
		return ctx.Next()
	})
}
