package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Cache        CacheConfig
	Events       EventsConfig
	Resolver     ResolverConfig
	Presentation PresentationConfig
	Messages     MessagesConfig
	Logging      LoggingConfig
	Metrics      MetricsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	Type     string // "postgres", "mongodb", "memory"
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
}

// PostgresConfig holds PostgreSQL configuration
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// MongoDBConfig holds MongoDB configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	MaxPoolSize    int
	MinPoolSize    int
	ServerTimeout  time.Duration
	SocketTimeout  time.Duration
	ReadPreference string
	WriteConcern   string
}

// CacheConfig holds carrier name cache configuration
type CacheConfig struct {
	Enabled    bool
	TTLSeconds int
	Redis      RedisConfig
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// EventsConfig holds the telephony change-event ingress configuration
type EventsConfig struct {
	Enabled bool
	NSQ     NSQConfig
}

// NSQConfig holds NSQ consumer configuration
type NSQConfig struct {
	Topic            string
	Channel          string
	NsqdAddresses    []string
	LookupdAddresses []string
	MaxInFlight      int
	Concurrency      int
}

// ResolverConfig holds the resolution engine feature toggles
type ResolverConfig struct {
	ShowMissingSim       bool
	ShowAirplaneMode     bool
	ShowLocale           bool
	ShowNetworkClass     bool
	EmergencyCallCapable bool
	SlotCount            int
}

// PresentationConfig holds display transformation configuration
type PresentationConfig struct {
	AllCaps bool
	Locale  string
}

// MessagesConfig holds string catalog overrides. Empty fields keep the
// built-in English templates.
type MessagesConfig struct {
	Separator          string
	MissingSim         string
	EmergencyCallsOnly string
	NetworkLocked      string
	SimLocked          string
	SimPukLocked       string
	SimPermDisabled    string
	SimError           string
	AirplaneMode       string
	NetworkClass2G     string
	NetworkClass3G     string
	NetworkClass4G     string
	NetworkClass5G     string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json", "text"
	OutputPath string // "stdout", "stderr", or file path
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/carrierd")
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("CARRIERD")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks cross-field constraints that viper cannot express
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "postgres", "mongodb", "memory":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Resolver.SlotCount <= 0 {
		return fmt.Errorf("resolver slot count must be positive, got %d", c.Resolver.SlotCount)
	}
	if c.Events.Enabled && len(c.Events.NSQ.NsqdAddresses) == 0 && len(c.Events.NSQ.LookupdAddresses) == 0 {
		return fmt.Errorf("events enabled but no nsqd or lookupd address configured")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.type", "memory")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "carrierd")
	v.SetDefault("database.postgres.password", "carrierd")
	v.SetDefault("database.postgres.database", "carrierd")
	v.SetDefault("database.postgres.sslMode", "disable")
	v.SetDefault("database.postgres.maxOpenConns", 25)
	v.SetDefault("database.postgres.maxIdleConns", 5)
	v.SetDefault("database.postgres.connMaxLifetime", "5m")
	v.SetDefault("database.postgres.connMaxIdleTime", "10m")
	v.SetDefault("database.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodb.database", "carrierd")
	v.SetDefault("database.mongodb.maxPoolSize", 50)
	v.SetDefault("database.mongodb.minPoolSize", 5)
	v.SetDefault("database.mongodb.serverTimeout", "10s")
	v.SetDefault("database.mongodb.socketTimeout", "30s")
	v.SetDefault("database.mongodb.readPreference", "primary")
	v.SetDefault("database.mongodb.writeConcern", "majority")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttlSeconds", 300)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	// Events defaults
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.nsq.topic", "telephony-events")
	v.SetDefault("events.nsq.channel", "carrierd")
	v.SetDefault("events.nsq.maxInFlight", 64)
	v.SetDefault("events.nsq.concurrency", 1)

	// Resolver defaults
	v.SetDefault("resolver.showMissingSim", true)
	v.SetDefault("resolver.showAirplaneMode", true)
	v.SetDefault("resolver.showLocale", false)
	v.SetDefault("resolver.showNetworkClass", false)
	v.SetDefault("resolver.emergencyCallCapable", true)
	v.SetDefault("resolver.slotCount", 2)

	// Presentation defaults
	v.SetDefault("presentation.allCaps", false)
	v.SetDefault("presentation.locale", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputPath", "stdout")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
