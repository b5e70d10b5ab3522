package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	_envPrefix  = "prospectar_server"
	_configName = "server"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads config/server.yaml (or /config/server.yaml) once per process.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		loaded, err := Load(_configName, "config", "/config")
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = loaded
	})

	return configInstance
}

// Load builds an AppConfig from the named file found in paths, overridden by
// PROSPECTAR_SERVER_* environment variables.
func Load(name string, paths ...string) (AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(_envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigName(name)
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel: v.GetString("general.log_level"),
		},
		HTTP: HTTPConfig{
			Addr:           v.GetString("http.addr"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Postgresql: PostgresqlConfig{
			URL:                   v.GetString("database.url"),
			DSN:                   v.GetString("database.dsn"),
			Timeout:               v.GetDuration("database.timeout"),
			MigrationReplacements: v.GetStringMapString("database.migration_replacements"),
		},
		Kafka: KafkaConfig{
			Brokers:        v.GetStringSlice("kafka.brokers"),
			Group:          v.GetString("kafka.group"),
			SchemaRegistry: v.GetString("kafka.schema_registry"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			DefinitionsTTL: v.GetDuration("cache.definitions_ttl"),
		},
		Coordinator: CoordinatorConfig{
			TenantID:     v.GetString("coordinator.tenant_id"),
			FetchTimeout: v.GetDuration("coordinator.fetch_timeout"),
		},
		Audit: AuditConfig{
			RetentionDays:     v.GetInt("audit.retention_days"),
			RetentionSchedule: v.GetString("audit.retention_schedule"),
		},
		Client: ClientConfig{
			BaseURL: v.GetString("client.base_url"),
			UserID:  v.GetString("client.user_id"),
			Timeout: v.GetDuration("client.timeout"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("database.timeout", 5*time.Second)
	v.SetDefault("kafka.group", "prospectar-server")
	v.SetDefault("cache.definitions_ttl", 5*time.Minute)
	v.SetDefault("coordinator.fetch_timeout", 10*time.Second)
	v.SetDefault("audit.retention_days", 365)
	v.SetDefault("audit.retention_schedule", "0 3 * * *")
	v.SetDefault("client.base_url", "http://localhost:3000")
	v.SetDefault("client.timeout", 15*time.Second)
}

type AppConfig struct {
	General     GeneralConfig
	HTTP        HTTPConfig
	Kafka       KafkaConfig
	Postgresql  PostgresqlConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Coordinator CoordinatorConfig
	Audit       AuditConfig
	Client      ClientConfig
}

type GeneralConfig struct {
	LogLevel string
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

type KafkaConfig struct {
	Brokers        []string
	Group          string
	SchemaRegistry string
}

type PostgresqlConfig struct {
	URL                   string
	DSN                   string
	Timeout               time.Duration
	MigrationReplacements map[string]string
}

// RedisConfig is optional; an empty Addr keeps definitions in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	DefinitionsTTL time.Duration
}

type CoordinatorConfig struct {
	TenantID     string
	FetchTimeout time.Duration
}

type AuditConfig struct {
	RetentionDays     int
	RetentionSchedule string
}

type ClientConfig struct {
	BaseURL string
	UserID  string
	Timeout time.Duration
}
