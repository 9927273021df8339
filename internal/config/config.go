package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"GO_ENV"`
	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// Redis
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Remote evaluator
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Hints a user may request per proof per day
	MaxHints int `mapstructure:"MAX_HINTS"`
}

var AppConfig *Config

var defaults = map[string]interface{}{
	"PORT":           "8080",
	"GO_ENV":         "development",
	"DB_DRIVER":      "postgres",
	"DATABASE_URL":   "",
	"FRONTEND_URL":   "http://localhost:5173",
	"JWT_SECRET":     "",
	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"GEMINI_API_KEY": "",
	"GEMINI_MODEL":   "",
	"MAX_HINTS":      3,
}

func LoadConfig() {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
	AppConfig = &cfg
}

// CredentialSource records where an evaluator key came from
type CredentialSource string

const (
	CredentialExplicit    CredentialSource = "explicit"
	CredentialEnvironment CredentialSource = "environment"
	CredentialNone        CredentialSource = "none"
)

// Credential is the evaluator key handed to the evaluator and hint broker
type Credential struct {
	APIKey string
	Model  string
	Source CredentialSource
}

// Present reports whether a key is configured
func (c Credential) Present() bool {
	return c.APIKey != ""
}

// ResolveCredential picks the evaluator key: explicit beats environment,
// and neither yields an empty credential.
func ResolveCredential(explicit, environment, model string) Credential {
	if k := strings.TrimSpace(explicit); k != "" {
		return Credential{APIKey: k, Model: model, Source: CredentialExplicit}
	}
	if k := strings.TrimSpace(environment); k != "" {
		return Credential{APIKey: k, Model: model, Source: CredentialEnvironment}
	}
	return Credential{Model: model, Source: CredentialNone}
}

// DefaultCredential resolves the startup credential from the loaded config
func (c *Config) DefaultCredential() Credential {
	return ResolveCredential("", c.GeminiAPIKey, c.GeminiModel)
}
