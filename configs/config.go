package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type PlatformCredentials struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	Twitter          PlatformCredentials
	LinkedIn         PlatformCredentials
	Google           PlatformCredentials
	Tiktok           PlatformCredentials
	Reddit           PlatformCredentials
	Pinterest        PlatformCredentials
	Twitch           PlatformCredentials
	Vimeo            PlatformCredentials
	MastodonInstance string
	PostgresURI      string
	RedisURI         string
	FrontendURL      string
	R2               R2
	SecretKey        string
	EncryptionKey    string
	CookieName       string
	PublishTimeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Twitter: PlatformCredentials{
			ClientID:     getEnv("TWITTER_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITTER_CLIENT_SECRET", ""),
		},
		LinkedIn: PlatformCredentials{
			ClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
			ClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		},
		Google: PlatformCredentials{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		},
		Tiktok: PlatformCredentials{
			ClientID:     getEnv("TIKTOK_CLIENT_KEY", ""),
			ClientSecret: getEnv("TIKTOK_CLIENT_SECRET", ""),
		},
		Reddit: PlatformCredentials{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		},
		Pinterest: PlatformCredentials{
			ClientID:     getEnv("PINTEREST_CLIENT_ID", ""),
			ClientSecret: getEnv("PINTEREST_CLIENT_SECRET", ""),
		},
		Twitch: PlatformCredentials{
			ClientID:     getEnv("TWITCH_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITCH_CLIENT_SECRET", ""),
		},
		Vimeo: PlatformCredentials{
			ClientID:     getEnv("VIMEO_CLIENT_ID", ""),
			ClientSecret: getEnv("VIMEO_CLIENT_SECRET", ""),
		},
		MastodonInstance: getEnv("MASTODON_INSTANCE", "mastodon.social"),
		PostgresURI:      getEnv("POSTGRES_URI", ""),
		RedisURI:         getEnv("REDIS_URI", ""),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:      getEnv("SECRET_KEY", ""),
		EncryptionKey:  getEnv("ENCRYPTION_KEY", ""),
		CookieName:     getEnv("COOKIE_NAME", ""),
		PublishTimeout: getDurationEnv("PUBLISH_TIMEOUT_SECONDS", 60*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
