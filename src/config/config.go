package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	AWS             AWSConfig            `mapstructure:"aws"`
	Scheduler       SchedulerConfig      `mapstructure:"scheduler"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	MarketData MarketDataConfig `mapstructure:"marketData"`
	News       NewsConfig       `mapstructure:"news"`
	LLM        LLMConfig        `mapstructure:"llm"`
}

type MarketDataConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

type NewsConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
}

type LLMConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwtSecret"`
	TokenTTLMinutes int    `mapstructure:"tokenTTLMinutes"`
}

type AWSConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secretName"`
}

type SchedulerConfig struct {
	QuotesCron string `mapstructure:"quotesCron"`
	NewsCron   string `mapstructure:"newsCron"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	ToFile bool   `mapstructure:"toFile"`
	File   string `mapstructure:"file"`
}

// LoadConfig reads appsettings.yaml from path, merges appsettings.<env>.yaml
// on top when env is non-empty, and lets APP_* environment variables override
// any key (dots become underscores, e.g. APP_AUTH_JWTSECRET).
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OverlaySecrets applies values fetched from an external secret store on top
// of the file-based configuration. Only known keys are consumed; anything
// else in the secret payload is ignored.
func (c *Config) OverlaySecrets(secrets map[string]string) {
	if v, ok := secrets["jwt_secret"]; ok && v != "" {
		c.Auth.JWTSecret = v
	}
	if v, ok := secrets["market_data_api_key"]; ok && v != "" {
		c.ExternalClients.MarketData.APIKey = v
	}
	if v, ok := secrets["news_api_key"]; ok && v != "" {
		c.ExternalClients.News.APIKey = v
	}
	if v, ok := secrets["llm_api_key"]; ok && v != "" {
		c.ExternalClients.LLM.APIKey = v
	}
}

// TokenTTLMinutesOrDefault guards against a missing or nonsensical TTL.
func (c *Config) TokenTTLMinutesOrDefault() int {
	if c.Auth.TokenTTLMinutes <= 0 {
		return 24 * 60
	}
	return c.Auth.TokenTTLMinutes
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutesOrDefault()) * time.Minute
}
