package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default returns the configuration used when no file is given.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "lyricroom",
			User:     "mysql",
			Password: "mysql",
			LogLevel: "error",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Host: "", Port: "8080"},
			MaxLimit:       50,
			DefaultLimit:   20,
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			TokenSecret: "token_secret",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Secret: "session_secret",
			Name:   "lyricroom_session",
		},
		Storage: S3Configs{
			Region:         "auto",
			Endpoint:       "http://localhost:9000",
			PublicEndpoint: "http://localhost:9000",
			Bucket:         "images",
			SSLDisabled:    true,
		},
		File: FileConfigs{
			MaxSize: 2 * 1024 * 1024,
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
		PubSub: PubSubConfigs{
			Driver: "",
			Topic:  "engagement",
		},
		Kafka: KafkaConfigs{
			Addr: "localhost:9092",
		},
		Nats: NatsConfigs{
			URL: "nats://localhost:4222",
		},
		SearchServer: SearchServerConfigs{
			IndexDir: "searchindex",
		},
		Spotify: SpotifyConfigs{
			RedirectURL: "http://localhost:3000/spotify/callback",
			AuthURL:     "https://accounts.spotify.com/authorize",
			TokenURL:    "https://accounts.spotify.com/api/token",
			APIBaseURL:  "https://api.spotify.com/v1",
			Scopes: []string{
				"user-read-private",
				"user-read-email",
				"user-library-read",
				"user-top-read",
				"playlist-modify-public",
				"playlist-modify-private",
				"streaming",
				"user-read-playback-state",
				"user-modify-playback-state",
			},
		},
		Story: StoryConfigs{
			TTL:           24 * time.Hour,
			PurgeInterval: 10 * time.Minute,
		},
		Ledger: LedgerConfigs{
			MaxRetries:   3,
			InitialDelay: 10 * time.Millisecond,
			MaxDelay:     200 * time.Millisecond,
		},
		Cache: CacheConfigs{
			TTL: 10 * time.Minute,
		},
	}
}

// Load reads the toml file at path on top of Default, then applies
// environment overrides. An empty path only applies the overrides.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Configs) {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.LogLevel, "DB_LOG_LEVEL")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")
	setString(&cfg.ApiServer.Cert, "API_CERT")
	setString(&cfg.ApiServer.Key, "API_KEY")
	setInt(&cfg.ApiServer.MaxLimit, "API_MAX_LIMIT")
	setInt(&cfg.ApiServer.DefaultLimit, "API_DEFAULT_LIMIT")
	setStrings(&cfg.ApiServer.AllowedOrigins, "API_ALLOWED_ORIGINS")

	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&cfg.Auth.AccessToken.Name, "ACCESS_TOKEN_NAME")
	setDuration(&cfg.Auth.AccessToken.Expiration, "ACCESS_TOKEN_EXPIRATION")

	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setString(&cfg.Session.Name, "SESSION_NAME")

	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.PublicEndpoint, "STORAGE_PUBLIC_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setBool(&cfg.Storage.SSLDisabled, "STORAGE_SSL_DISABLED")

	setInt64(&cfg.File.MaxSize, "MAX_UPLOAD_FILE")

	setString(&cfg.Redis.Addr, "REDIS_ADDRESS")

	setString(&cfg.PubSub.Driver, "PUBSUB_DRIVER")
	setString(&cfg.PubSub.Topic, "PUBSUB_TOPIC")
	setString(&cfg.Kafka.Addr, "KAFKA_ADDRESS")
	setString(&cfg.Nats.URL, "NATS_URL")

	setString(&cfg.SearchServer.IndexDir, "SEARCH_INDEX_DIR")

	setString(&cfg.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setString(&cfg.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setString(&cfg.Spotify.RedirectURL, "SPOTIFY_REDIRECT_URI")

	setDuration(&cfg.Story.TTL, "STORY_TTL")
	setDuration(&cfg.Story.PurgeInterval, "STORY_PURGE_INTERVAL")

	setInt(&cfg.Ledger.MaxRetries, "LEDGER_MAX_RETRIES")
	setDuration(&cfg.Ledger.InitialDelay, "LEDGER_INITIAL_DELAY")
	setDuration(&cfg.Ledger.MaxDelay, "LEDGER_MAX_DELAY")

	setDuration(&cfg.Cache.TTL, "CACHE_TTL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setStrings(dst *[]string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.Split(v, ",")
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
