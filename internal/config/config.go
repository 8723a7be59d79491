package config

import (
	"fmt"
	"strings"
	"time"

	"mpesarelay/internal/domain/credential"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, LogLevel string }
type DBCfg struct{ DSN string }

type MpesaCfg struct {
	Environment credential.Environment
	Credentials credential.Credentials
	HTTPTimeout time.Duration
	BaseURL     string // optional override of the environment's host
}

type GatewayCfg struct {
	APIKeys []string // static keys used when no DB is configured
}

type Cfg struct {
	App     AppCfg
	DB      DBCfg
	Mpesa   MpesaCfg
	Gateway GatewayCfg
}

// Load reads .env (if present) and the process environment. Invalid or
// missing required settings are fatal.
func Load() Cfg {
	// existing env vars win over .env
	_ = godotenv.Load()

	cfg, err := FromViper(viper.GetViper())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// FromViper builds a Cfg from v, which is bound to the environment
func FromViper(v *viper.Viper) (Cfg, error) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "sandbox")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MPESA_HTTP_TIMEOUT", "30s")

	env, err := credential.ParseEnvironment(v.GetString("APP_ENV"))
	if err != nil {
		return Cfg{}, fmt.Errorf("APP_ENV: %w", err)
	}

	cfg := Cfg{
		App: AppCfg{
			Env:      string(env),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBCfg{DSN: v.GetString("DB_DSN")},
		Mpesa: MpesaCfg{
			Environment: env,
			Credentials: credential.Credentials{
				Key:                strings.TrimSpace(v.GetString("MPESA_CONSUMER_KEY")),
				Secret:             strings.TrimSpace(v.GetString("MPESA_CONSUMER_SECRET")),
				SecurityCredential: v.GetString("MPESA_SECURITY_CREDENTIAL"),
				CertificatePath:    v.GetString("MPESA_CERTIFICATE_PATH"),
			},
			HTTPTimeout: v.GetDuration("MPESA_HTTP_TIMEOUT"),
			BaseURL:     strings.TrimSuffix(v.GetString("MPESA_BASE_URL"), "/"),
		},
		Gateway: GatewayCfg{APIKeys: splitList(v.GetString("GATEWAY_API_KEYS"))},
	}

	// Fail fast on required settings
	if err := cfg.Mpesa.Credentials.Validate(); err != nil {
		return Cfg{}, fmt.Errorf("MPESA_CONSUMER_KEY/MPESA_CONSUMER_SECRET: %w", err)
	}
	if env == credential.EnvironmentProduction && cfg.Mpesa.Credentials.CertificatePath == "" {
		return Cfg{}, fmt.Errorf("MPESA_CERTIFICATE_PATH is required in production")
	}
	if cfg.Mpesa.HTTPTimeout <= 0 {
		return Cfg{}, fmt.Errorf("MPESA_HTTP_TIMEOUT must be positive")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
