package initializers

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDriver        string
	DBURL           string
	DBDebug         bool
	JWTSecret       string
	AllowedOrigins  []string
	AWSBucket       string
	PageSize        int
	ShutdownTimeout time.Duration
	GinMode         string
	Environment     string
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() Config {
	// .env file is optional
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBURL:           getEnv("DB_URL", ""),
		DBDebug:         getEnvBool("DB_DEBUG", false),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:4200,https://www.amexan.store")),
		AWSBucket:       getEnv("AWS_BUCKET", ""),
		PageSize:        getEnvInt("PAGE_SIZE", 10),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		GinMode:         getEnv("GIN_MODE", "debug"),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
