package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIURL    string `env:"WORKSYNC_API_URL,   required"`
	AgentAddr string `env:"WORKSYNC_AGENT_ADDR, default=127.0.0.1:7420"`
	Env       string `env:"ENV,                default=development"`
	LogLevel  string `env:"LOG_LEVEL,          default=info"`
	LogPretty bool   `env:"LOG_PRETTY,         default=false"`

	BootstrapTimeout time.Duration `env:"WORKSYNC_BOOTSTRAP_TIMEOUT, default=10s"`
	RequestTimeout   time.Duration `env:"WORKSYNC_REQUEST_TIMEOUT,   default=30s"`
	PollInterval     time.Duration `env:"WORKSYNC_POLL_INTERVAL,     default=60s"`
	RefreshPerMinute int           `env:"WORKSYNC_REFRESH_PER_MINUTE, default=6"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// StorageConfig selects the drivers behind the two credential scopes.
type StorageConfig struct {
	Durable    string        `env:"WORKSYNC_DURABLE_STORE, default=file"`
	Session    string        `env:"WORKSYNC_SESSION_STORE, default=memory"`
	StateDir   string        `env:"WORKSYNC_STATE_DIR"`
	Secret     string        `env:"WORKSYNC_STORE_SECRET"`
	SessionTTL time.Duration `env:"WORKSYNC_SESSION_TTL,   default=12h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=worksync_agent"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects driver names and values the agent cannot act on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("WORKSYNC_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	switch c.Storage.Durable {
	case "file", "mongo", "redis":
	default:
		return fmt.Errorf("WORKSYNC_DURABLE_STORE must be file, mongo or redis, got %q", c.Storage.Durable)
	}
	switch c.Storage.Session {
	case "memory", "redis":
	default:
		return fmt.Errorf("WORKSYNC_SESSION_STORE must be memory or redis, got %q", c.Storage.Session)
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("WORKSYNC_POLL_INTERVAL must be at least 1s, got %s", c.PollInterval)
	}
	return nil
}

// UsesRedis reports whether either scope is kept in Redis.
func (c *Config) UsesRedis() bool {
	return c.Storage.Durable == "redis" || c.Storage.Session == "redis"
}

// UsesMongo reports whether the durable scope is kept in MongoDB.
func (c *Config) UsesMongo() bool {
	return c.Storage.Durable == "mongo"
}

// DurableFile is where the file driver keeps the durable scope. Without
// WORKSYNC_STATE_DIR it lives under the user's config directory.
func (c *Config) DurableFile() (string, error) {
	dir := c.Storage.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(base, "worksync")
	}
	return filepath.Join(dir, "credentials.json"), nil
}
