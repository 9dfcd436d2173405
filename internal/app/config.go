package app

import (
	"os"
	"strconv"
	"time"
)

// Config is read from the environment; cmd/* load .env first.
type Config struct {
	JWTSecret   string
	AutoMigrate bool

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	StorageDriver string
	MediaRoot     string
	MediaBaseURL  string

	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
	S3PresignTTL   time.Duration
}

func LoadConfig() Config {
	return Config{
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AutoMigrate: envBool("DB_AUTO_MIGRATE", false),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		StorageDriver: envOr("STORAGE_DRIVER", "local"),
		MediaRoot:     envOr("MEDIA_ROOT", "media"),
		MediaBaseURL:  envOr("MEDIA_BASE_URL", "/media"),

		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3UsePathStyle: envBool("S3_USE_PATH_STYLE", false),
		S3PresignTTL:   envDuration("S3_PRESIGN_TTL", 15*time.Minute),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
