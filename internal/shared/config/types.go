package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis host is configured. Without one the plan
// cache and rate limiting are off.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	PlanTTLSeconds int `mapstructure:"plan_ttl_seconds"`
}

func (c *CacheConfig) PlanTTL() time.Duration {
	return time.Duration(c.PlanTTLSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

// KafkaConfig configures the plan event publisher. An empty broker list
// disables publishing.
type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	PlanTopic    string   `mapstructure:"plan_topic"`
	MaxRetries   uint64   `mapstructure:"max_retries"`
	WriteTimeout int      `mapstructure:"write_timeout_ms"`
}

func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.PlanTopic != ""
}

func (k *KafkaConfig) WriteTimeoutDuration() time.Duration {
	if k.WriteTimeout <= 0 {
		return 2 * time.Second
	}
	return time.Duration(k.WriteTimeout) * time.Millisecond
}

type ReconciliationConfig struct {
	TransactionTimeoutSeconds int `mapstructure:"transaction_timeout_seconds"`
}

// TransactionTimeout falls back to 8 seconds when unset.
func (r *ReconciliationConfig) TransactionTimeout() time.Duration {
	if r.TransactionTimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(r.TransactionTimeoutSeconds) * time.Second
}

type AutoTagConfig struct {
	RulesPath string `mapstructure:"rules_path"`
}
