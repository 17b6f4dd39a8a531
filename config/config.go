package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    APIServerConfigs    `toml:"api_server"`
	Auth         AuthConfigs         `toml:"auth"`
	Session      SessionConfigs      `toml:"session"`
	Storage      S3Configs           `toml:"storage"`
	File         FileConfigs         `toml:"file"`
	Redis        RedisConfigs        `toml:"redis"`
	PubSub       PubSubConfigs       `toml:"pubsub"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Nats         NatsConfigs         `toml:"nats"`
	SearchServer SearchServerConfigs `toml:"search"`
	Spotify      SpotifyConfigs      `toml:"spotify"`
	Story        StoryConfigs        `toml:"story"`
	Ledger       LedgerConfigs       `toml:"ledger"`
	Cache        CacheConfigs        `toml:"cache"`
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Database
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs
	MaxLimit       int      `toml:"max_limit"`
	DefaultLimit   int      `toml:"default_limit"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
	Bucket         string `toml:"bucket"`
}

type FileConfigs struct {
	MaxSize int64 `toml:"max_size"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type PubSubConfigs struct {
	// Driver is "kafka", "nats" or empty to disable event publishing.
	Driver string `toml:"driver"`
	Topic  string `toml:"topic"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

type NatsConfigs struct {
	URL string `toml:"url"`
}

type SearchServerConfigs struct {
	IndexDir string `toml:"index_dir"`
}

type SpotifyConfigs struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	APIBaseURL   string   `toml:"api_base_url"`
	Scopes       []string `toml:"scopes"`
}

type StoryConfigs struct {
	TTL           time.Duration `toml:"ttl"`
	PurgeInterval time.Duration `toml:"purge_interval"`
}

type LedgerConfigs struct {
	MaxRetries   int           `toml:"max_retries"`
	InitialDelay time.Duration `toml:"initial_delay"`
	MaxDelay     time.Duration `toml:"max_delay"`
}

type CacheConfigs struct {
	TTL time.Duration `toml:"ttl"`
}
