package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Redis    RedisConfig
	Engine   EngineConfig
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// EngineConfig carries the scoring policy knobs. The defaults are the
// production values; tests construct their own.
type EngineConfig struct {
	RecommendationTopN  int
	SimilarityThreshold float64
	TopSimilarUsers     int
	TrendWindowDays     int
	SeasonalWindowDays  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "Fashion Trends API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", ""),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "fashion_trends"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Engine: EngineConfig{
			RecommendationTopN:  getEnvInt("ENGINE_RECOMMENDATION_TOP_N", 10),
			SimilarityThreshold: getEnvFloat("ENGINE_SIMILARITY_THRESHOLD", 0.5),
			TopSimilarUsers:     getEnvInt("ENGINE_TOP_SIMILAR_USERS", 5),
			TrendWindowDays:     getEnvInt("ENGINE_TREND_WINDOW_DAYS", 30),
			SeasonalWindowDays:  getEnvInt("ENGINE_SEASONAL_WINDOW_DAYS", 30),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppEmailVerificationKey == "" {
		return nil, errors.New("missing app email verification key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
