package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/textfilter"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Policy  PolicyConfig  `mapstructure:"policy"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	// SecretKey signs admin tokens. Admin routes reject every request
	// while it is empty.
	SecretKey     string        `mapstructure:"secret_key"`
	AdminTokenTTL time.Duration `mapstructure:"admin_token_ttl"`
}

type MetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	EnableDecisions bool `mapstructure:"enable_decisions"`
	EnableHTTP      bool `mapstructure:"enable_http"`
	EnableProfile   bool `mapstructure:"enable_profile"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type RulesConfig struct {
	// File overrides the embedded default rule pack.
	File string `mapstructure:"file"`
	// SupplementaryDir holds the user ad and malicious list files.
	SupplementaryDir string `mapstructure:"supplementary_dir"`
	RedisKey         string `mapstructure:"redis_key"`
	EventsChannel    string `mapstructure:"events_channel"`
}

type RestrictedPlatformConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	KidsRedirect string `mapstructure:"kids_redirect"`
}

type PolicyConfig struct {
	DefaultProfile     string                   `mapstructure:"default_profile"`
	StrictMode         bool                     `mapstructure:"strict_mode"`
	SafeSearch         bool                     `mapstructure:"safe_search"`
	ContentFiltering   bool                     `mapstructure:"content_filtering"`
	SocialMediaEnabled bool                     `mapstructure:"social_media_enabled"`
	GamingEnabled      bool                     `mapstructure:"gaming_enabled"`
	BlockedCategories  map[string]bool          `mapstructure:"blocked_categories"`
	Thresholds         map[string]interface{}   `mapstructure:"thresholds"`
	RestrictedPlatform RestrictedPlatformConfig `mapstructure:"restricted_platform"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
	File  string `mapstructure:"file"`
}

var globalConfig Config

// Load reads config.yaml from configPath, ./config or the working
// directory. A missing file is not an error: defaults and environment
// variables such as REDIS_HOST still apply.
func Load(configPath string) error {
	cfg, err := Read(configPath)
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

func Read(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.secret_key", "")
	v.SetDefault("server.admin_token_ttl", "24h")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.enable_decisions", true)
	v.SetDefault("metrics.enable_http", true)
	v.SetDefault("metrics.enable_profile", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)

	v.SetDefault("rules.file", "")
	v.SetDefault("rules.supplementary_dir", "./data")
	v.SetDefault("rules.redis_key", "agelock:rules")
	v.SetDefault("rules.events_channel", "agelock_events")

	v.SetDefault("policy.default_profile", string(policy.Children))
	v.SetDefault("policy.strict_mode", false)
	v.SetDefault("policy.safe_search", true)
	v.SetDefault("policy.content_filtering", true)
	v.SetDefault("policy.social_media_enabled", false)
	v.SetDefault("policy.gaming_enabled", true)
	v.SetDefault("policy.restricted_platform.enabled", true)
	v.SetDefault("policy.restricted_platform.kids_redirect", "")

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.file", "agelock.log")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort == c.Server.Port {
		return fmt.Errorf("server.metrics_port must differ from server.port")
	}
	if c.Server.AdminTokenTTL < 0 {
		return fmt.Errorf("invalid server.admin_token_ttl %s", c.Server.AdminTokenTTL)
	}
	if _, err := c.Policy.ThresholdOverrides(); err != nil {
		return fmt.Errorf("policy.thresholds: %w", err)
	}
	return nil
}

// Profile is the configured start-up profile; unknown values become
// children.
func (p PolicyConfig) Profile() policy.AgeProfile {
	return policy.AgeProfile(p.DefaultProfile).Normalize()
}

func (p PolicyConfig) ThresholdOverrides() (textfilter.Thresholds, error) {
	if len(p.Thresholds) == 0 {
		return nil, nil
	}
	return textfilter.Decode(p.Thresholds)
}

func GetConfig() *Config {
	return &globalConfig
}
