package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	BeaconBase  string
	BeaconToken string
	FeedRPS     float64
	PlacesBase  string
	PlacesKey   string
	GeminiKey   string
	GeminiModel string
	BucketBase  string
	BucketName  string
	BucketToken string
	Workers     int
	PlaceIDs    []string
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/onboard?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		BeaconBase:  env("BEACON_BASE_URL", ""),
		BeaconToken: env("BEACON_API_TOKEN", ""),
		FeedRPS:     float64(atoi("FEED_RPS", 3)),
		PlacesBase:  env("PLACES_BASE_URL", ""),
		PlacesKey:   env("PLACES_API_KEY", ""),
		GeminiKey:   env("GEMINI_API_KEY", ""),
		GeminiModel: env("GEMINI_MODEL", ""),
		BucketBase:  env("BUCKET_BASE_URL", ""),
		BucketName:  env("BUCKET_NAME", "assets"),
		BucketToken: env("BUCKET_TOKEN", ""),
		Workers:     atoi("ONBOARD_WORKERS", 4),
		PlaceIDs:    split(env("ONBOARD_PLACE_IDS", "")),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty")
	}
	if c.BeaconToken == "" {
		log.Warn().Msg("BEACON_API_TOKEN is empty, feed aggregation disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func split(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
