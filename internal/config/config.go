package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort       string
	AppBaseURL    string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int
	IDEncryptKey  string

	RedisAddr     string
	RedisPassword string

	// DraftStore is "redis" or "memory".
	DraftStore string
	DraftTTL   time.Duration

	UploadDir     string
	CORSOrigins   string
	CategoryCache time.Duration
}

func Load() Config {
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		AppBaseURL:    strings.TrimRight(get("APP_BASE_URL", ""), "/"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: getInt("JWT_EXPIRES_MIN", 10080),
		IDEncryptKey:  get("ID_ENCRYPT_KEY", "0123456789abcdef0123456789abcdef"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		DraftStore:    strings.ToLower(get("DRAFT_STORE", "redis")),
		DraftTTL:      time.Duration(getInt("DRAFT_TTL_MIN", 1440)) * time.Minute,
		UploadDir:     get("UPLOAD_DIR", "./uploads"),
		CORSOrigins:   get("CORS_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),
		CategoryCache: time.Duration(getInt("CATEGORY_CACHE_SEC", 300)) * time.Second,
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	v, err := strconv.Atoi(get(k, ""))
	if err != nil {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
