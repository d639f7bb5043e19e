package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr    string
	PublicBaseURL string
	DBPath        string

	SessionSecret string
	SecureCookies bool

	PhotoBackend       string // "local" or "s3"
	PhotoPath          string
	PhotoBucket        string
	PhotoSigningSecret string

	S3Region          string
	S3Bucket          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	GeocodeBackend string // "nominatim" or "mapbox"
	MapboxToken    string
	NominatimHost  string

	ViewCacheSize int

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		DBPath:        getEnv("DB_PATH", "/data/campista.db"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SecureCookies: getEnv("SECURE_COOKIES", "false") == "true",

		PhotoBackend:       getEnv("PHOTO_BACKEND", "local"),
		PhotoPath:          getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		PhotoBucket:        getEnv("PHOTO_BUCKET", "campsite-photos"),
		PhotoSigningSecret: getEnv("PHOTO_SIGNING_SECRET", ""),

		S3Region:          getEnv("S3_REGION", "auto"),
		S3Bucket:          getEnv("S3_BUCKET", "campsite-photos"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),

		GeocodeBackend: getEnv("GEOCODE_BACKEND", "nominatim"),
		MapboxToken:    getEnv("MAPBOX_TOKEN", ""),
		NominatimHost:  getEnv("NOMINATIM_HOST", ""),

		ViewCacheSize: getEnvInt("VIEW_CACHE_SIZE", 1024),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
