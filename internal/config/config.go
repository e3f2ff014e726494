package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/pkg/validator"
)

type Config struct {
	Server    ServerConfig
	Monitor   MonitorConfig
	Broadcast BroadcastConfig
	Redis     RedisConfig
	Cache     CacheConfig
	MQTT      MQTTConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int    `validate:"min=1,max=65535"`
	Env         string `validate:"required"`
	CORSOrigins string
}

type MonitorConfig struct {
	RefreshInterval      time.Duration `validate:"gt=0"`
	PeakAnalysisInterval time.Duration `validate:"gt=0"`
	PeakAnalysisDays     int           `validate:"min=1,max=30"`
	Timezone             string        `validate:"required"`
	RandomSeed           uint64
	PatternFile          string
}

type BroadcastConfig struct {
	SubscriberBuffer int `validate:"min=1"`
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	LiveChannel  string
	Stream       string
	StreamMaxLen int64 `validate:"gte=0"`
	// consumer side of the stream (cmd/worker)
	ConsumerGroup string
	ConsumerName  string
	ReadBlock     time.Duration
}

type CacheConfig struct {
	AnalysisTTL time.Duration `validate:"gte=0"`
}

type MQTTConfig struct {
	Enabled   bool
	BrokerURL string `validate:"required_if=Enabled true"`
	ClientID  string
	Topic     string `validate:"required_if=Enabled true"`
	QoS       int    `validate:"min=0,max=2"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type WorkerConfig struct {
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")

	v.SetDefault("MONITOR_REFRESH_INTERVAL", "30s")
	v.SetDefault("MONITOR_PEAK_ANALYSIS_INTERVAL", "5m")
	v.SetDefault("MONITOR_PEAK_ANALYSIS_DAYS", 7)
	v.SetDefault("MONITOR_TIMEZONE", "Asia/Singapore")
	v.SetDefault("MONITOR_RANDOM_SEED", 0)
	v.SetDefault("MONITOR_PATTERN_FILE", "")

	v.SetDefault("BROADCAST_SUBSCRIBER_BUFFER", 16)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_LIVE_CHANNEL", domain.ChannelTrafficLive)
	v.SetDefault("REDIS_STREAM", domain.StreamTrafficUpdates)
	v.SetDefault("REDIS_STREAM_MAXLEN", 1000)
	v.SetDefault("REDIS_CONSUMER_GROUP", "traffic-consumers")
	v.SetDefault("REDIS_CONSUMER_NAME", "consumer-1")
	v.SetDefault("REDIS_READ_BLOCK", "1s")
	v.SetDefault("ANALYSIS_CACHE_TTL", "15m")

	v.SetDefault("MQTT_ENABLED", false)
	v.SetDefault("MQTT_BROKER_URL", "tcp://localhost:1883")
	v.SetDefault("MQTT_CLIENT_ID", "border-traffic-monitor")
	v.SetDefault("MQTT_TOPIC", "border/traffic/updates")
	v.SetDefault("MQTT_QOS", 0)

	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", "30s")
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Monitor: MonitorConfig{
			RefreshInterval:      v.GetDuration("MONITOR_REFRESH_INTERVAL"),
			PeakAnalysisInterval: v.GetDuration("MONITOR_PEAK_ANALYSIS_INTERVAL"),
			PeakAnalysisDays:     v.GetInt("MONITOR_PEAK_ANALYSIS_DAYS"),
			Timezone:             v.GetString("MONITOR_TIMEZONE"),
			RandomSeed:           v.GetUint64("MONITOR_RANDOM_SEED"),
			PatternFile:          v.GetString("MONITOR_PATTERN_FILE"),
		},
		Broadcast: BroadcastConfig{
			SubscriberBuffer: v.GetInt("BROADCAST_SUBSCRIBER_BUFFER"),
		},
		Redis: RedisConfig{
			Enabled:       v.GetBool("REDIS_ENABLED"),
			Host:          v.GetString("REDIS_HOST"),
			Port:          v.GetInt("REDIS_PORT"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			LiveChannel:   v.GetString("REDIS_LIVE_CHANNEL"),
			Stream:        v.GetString("REDIS_STREAM"),
			StreamMaxLen:  v.GetInt64("REDIS_STREAM_MAXLEN"),
			ConsumerGroup: v.GetString("REDIS_CONSUMER_GROUP"),
			ConsumerName:  v.GetString("REDIS_CONSUMER_NAME"),
			ReadBlock:     v.GetDuration("REDIS_READ_BLOCK"),
		},
		Cache: CacheConfig{
			AnalysisTTL: v.GetDuration("ANALYSIS_CACHE_TTL"),
		},
		MQTT: MQTTConfig{
			Enabled:   v.GetBool("MQTT_ENABLED"),
			BrokerURL: v.GetString("MQTT_BROKER_URL"),
			ClientID:  v.GetString("MQTT_CLIENT_ID"),
			Topic:     v.GetString("MQTT_TOPIC"),
			QoS:       v.GetInt("MQTT_QOS"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		Worker: WorkerConfig{
			ShutdownTimeout: v.GetDuration("WORKER_SHUTDOWN_TIMEOUT"),
		},
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// Addr - host:port для go-redis
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Location resolves the timezone used for hour-of-day and weekday bucketing.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Monitor.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_TIMEZONE %q: %w", c.Monitor.Timezone, err)
	}
	return loc, nil
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.Server.CORSOrigins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
