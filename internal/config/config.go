package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreCookie   = "cookie"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Cart struct {
	// StoreKind selects the persistence backend: cookie, redis or postgres.
	StoreKind  string        `yaml:"store" env:"CART_STORE" env-default:"cookie"`
	CookieName string        `yaml:"cookie_name" env:"CART_COOKIE_NAME" env-default:"cart_items"`
	TTL        time.Duration `yaml:"ttl" env:"CART_TTL" env-default:"720h"`
}

type Session struct {
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"magnet_session"`
	JWTKey     string        `yaml:"jwt_key" env:"SESSION_JWT_KEY" env-default:""`
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
}

type Database struct {
	Host            string        `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"PG_USER" env-default:"magnet"`
	Password        string        `yaml:"password" env:"PG_PASSWORD" env-default:""`
	Name            string        `yaml:"name" env:"PG_DBNAME" env-default:"magnet_cart"`
	SSLMode         string        `yaml:"sslmode" env:"PG_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConnect struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"username" env:"REDIS_USER" env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

// Backend is the Order/Payment API this service calls. All business logic
// (order totals, payment verification, image approval) lives behind it.
type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_API_URL" env-default:"http://localhost:5000/api"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_API_TIMEOUT" env-default:"30s"`
}

type Kafka struct {
	// Empty broker list disables event publishing.
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:""`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"cart-events"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"10m"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"development"`
	HTTPServer   `yaml:"http_server"`
	Cart         Cart         `yaml:"cart"`
	Session      Session      `yaml:"session"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Backend      Backend      `yaml:"backend"`
	Kafka        Kafka        `yaml:"kafka"`
	Cache        CacheConfig  `yaml:"cache"`
	CORS         CORS         `yaml:"cors"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

// LoadConfigFromPath reads a YAML config file, with environment variables
// overriding file values.
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads configuration from CONFIG_PATH (or -config), falling back
// to environment variables alone when no file is given.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flagPath := flag.String("config", "", "path to the config file")
		flag.Parse()
		configPath = *flagPath
	}

	if configPath != "" {
		cfg, err := LoadConfigFromPath(configPath)
		if err != nil {
			log.Fatal(err)
		}

		return cfg
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("can not read config from environment: %s", err.Error())
	}

	return &cfg
}
