// Package config loads gateway configuration from an optional YAML file, a
// .env file and JURIFY_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jurify/pkg/platform/middleware/metadata"
)

// Config is the root configuration.
type Config struct {
	Server    Server          `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Poller    PollerConfig    `mapstructure:"poller"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Audit     AuditConfig     `mapstructure:"audit"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AdminToken      string        `mapstructure:"admin_token"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	// TrustedProxies lists the addresses or CIDR ranges of reverse proxies
	// whose X-Forwarded-For and X-Real-IP headers are believed.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig points at the Jurify backend REST API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// RetryCount applies to idempotent calls only.
	RetryCount int `mapstructure:"retry_count"`
}

type SessionConfig struct {
	Store      string        `mapstructure:"store"`
	TTL        time.Duration `mapstructure:"ttl"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// PollerConfig bounds email-verification polling.
type PollerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxInterval time.Duration `mapstructure:"max_interval"`
	Multiplier  float64       `mapstructure:"multiplier"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

type GeocodingConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond int           `mapstructure:"rate_per_second"`
}

type DiscoveryConfig struct {
	Store    string `mapstructure:"store"`
	SeedFile string `mapstructure:"seed_file"`
}

type AuditConfig struct {
	Sink         string   `mapstructure:"sink"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
}

// JWTConfig is optional: without a signing key, access-token claims are read
// unverified since the backend remains the token authority.
type JWTConfig struct {
	SigningKey string `mapstructure:"signing_key"`
}

type RateLimitConfig struct {
	LoginPerMinute   int `mapstructure:"login_per_minute"`
	GeocodePerMinute int `mapstructure:"geocode_per_minute"`
}

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	SinkKafka     = "kafka"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.admin_token", "")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("server.public_base_url", "http://localhost:5173")
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.retry_count", 2)

	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("session.cookie_name", "jurify_session")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.max_conns", 5)

	v.SetDefault("poller.interval", 3*time.Second)
	v.SetDefault("poller.max_interval", 30*time.Second)
	v.SetDefault("poller.multiplier", 1.5)
	v.SetDefault("poller.max_attempts", 200)
	v.SetDefault("poller.max_duration", 30*time.Minute)

	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "jurify-app/1.0")
	v.SetDefault("geocoding.timeout", 10*time.Second)
	v.SetDefault("geocoding.rate_per_second", 1)

	v.SetDefault("discovery.store", StoreMemory)
	v.SetDefault("discovery.seed_file", "")

	v.SetDefault("audit.sink", StoreMemory)
	v.SetDefault("audit.kafka_brokers", []string{})
	v.SetDefault("audit.kafka_topic", "jurify.audit")

	v.SetDefault("jwt.signing_key", "")

	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.geocode_per_minute", 60)
}

// Load reads configuration. path may be empty; a missing .env file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("JURIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Audit.KafkaBrokers = splitEnvList(cfg.Audit.KafkaBrokers)
	cfg.Server.TrustedProxies = splitEnvList(cfg.Server.TrustedProxies)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// splitEnvList expands a comma-separated list, which is how lists arrive from
// the environment.
func splitEnvList(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		return strings.Split(values[0], ",")
	}
	return values
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("session.store=redis requires redis.url"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session.store %q", c.Session.Store))
	}

	switch c.Discovery.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("discovery.store=postgres requires postgres.url"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown discovery.store %q", c.Discovery.Store))
	}

	switch c.Audit.Sink {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("audit.sink=postgres requires postgres.url"))
		}
	case SinkKafka:
		if len(c.Audit.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("audit.sink=kafka requires audit.kafka_brokers"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown audit.sink %q", c.Audit.Sink))
	}

	if c.Poller.Interval <= 0 {
		errs = append(errs, errors.New("poller.interval must be positive"))
	}
	if c.Poller.Multiplier < 1 {
		errs = append(errs, errors.New("poller.multiplier must be at least 1"))
	}
	if c.Poller.MaxAttempts <= 0 && c.Poller.MaxDuration <= 0 {
		errs = append(errs, errors.New("poller needs max_attempts or max_duration"))
	}
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.RetryCount < 0 {
		errs = append(errs, errors.New("api.retry_count must not be negative"))
	}
	if _, err := metadata.ParseTrustedProxies(c.Server.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("server.trusted_proxies: %w", err))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}

	return errors.Join(errs...)
}
