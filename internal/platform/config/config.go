package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store and sink selectors.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	SinkMemory   = "memory"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type SessionConfig struct {
	Store        string `mapstructure:"store"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

type ClientStatusConfig struct {
	Store string        `mapstructure:"store"`
	TTL   time.Duration `mapstructure:"ttl"`
}

type AuditConfig struct {
	Sink         string   `mapstructure:"sink"`
	PostgresDSN  string   `mapstructure:"postgres_dsn"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
	BufferSize   int      `mapstructure:"buffer_size"`
}

type VerificationConfig struct {
	DocumentConcurrency int `mapstructure:"document_concurrency"`
}

type AppConfig struct {
	ServiceName  string             `mapstructure:"service_name"`
	Env          string             `mapstructure:"env"`
	LogLevel     string             `mapstructure:"log_level"`
	HTTP         HTTPConfig         `mapstructure:"http"`
	Backend      BackendConfig      `mapstructure:"backend"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Session      SessionConfig      `mapstructure:"session"`
	ClientStatus ClientStatusConfig `mapstructure:"client_status"`
	Audit        AuditConfig        `mapstructure:"audit"`
	Verification VerificationConfig `mapstructure:"verification"`
}

// Load reads an optional YAML file at path and overlays BACKOFFICE_* env vars,
// e.g. BACKOFFICE_BACKEND_BASE_URL.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "backoffice-gateway")
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_header_timeout", "5s")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("backend.base_url", "http://localhost:5000/api")
	v.SetDefault("backend.timeout", "15s")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.cookie_name", "sid")
	v.SetDefault("session.cookie_secure", false)

	v.SetDefault("client_status.store", StoreMemory)
	v.SetDefault("client_status.ttl", "5s")

	v.SetDefault("audit.sink", SinkMemory)
	v.SetDefault("audit.postgres_dsn", "")
	v.SetDefault("audit.kafka_brokers", []string{})
	v.SetDefault("audit.kafka_topic", "backoffice.audit")
	v.SetDefault("audit.buffer_size", 256)

	v.SetDefault("verification.document_concurrency", 4)
}

// Validate checks cross-field requirements.
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	for name, store := range map[string]string{"session.store": c.Session.Store, "client_status.store": c.ClientStatus.Store} {
		switch store {
		case StoreMemory:
		case StoreRedis:
			if c.Redis.URL == "" {
				return fmt.Errorf("%s=redis requires redis.url", name)
			}
		default:
			return fmt.Errorf("%s: unknown store %q", name, store)
		}
	}
	switch c.Audit.Sink {
	case SinkMemory:
	case SinkPostgres:
		if c.Audit.PostgresDSN == "" {
			return errors.New("audit.sink=postgres requires audit.postgres_dsn")
		}
	case SinkKafka:
		if len(c.Audit.KafkaBrokers) == 0 {
			return errors.New("audit.sink=kafka requires audit.kafka_brokers")
		}
	default:
		return fmt.Errorf("audit.sink: unknown sink %q", c.Audit.Sink)
	}
	if c.ClientStatus.TTL <= 0 {
		return errors.New("client_status.ttl must be positive")
	}
	if c.Verification.DocumentConcurrency < 1 {
		return errors.New("verification.document_concurrency must be at least 1")
	}
	return nil
}
