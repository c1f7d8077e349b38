package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const MailerBackendSMTP = "smtp"
const MailerBackendSES = "ses"

type Config struct {
	Address    string `env:"ADDRESS" envDefault:"0.0.0.0:9090"`
	IsTestMode bool   `env:"TEST_MODE"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required,notEmpty"`

	TokenExpiresInMinutes int     `env:"TOKEN_EXPIRES_IN_MINUTES" envDefault:"30"`
	PublicBaseURL         url.URL `env:"PUBLIC_BASE_URL,required,notEmpty"`

	EmailFrom     string `env:"EMAIL_FROM,required,notEmpty"`
	MailerBackend string `env:"MAILER_BACKEND" envDefault:"smtp"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPSecure   bool   `env:"SMTP_SECURE" envDefault:"true"`

	AwsRegion             string `env:"AWS_REGION"`
	AwsAccessKey          string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey          string `env:"AWS_SECRET_KEY"`
	AwsEmailResetTemplate string `env:"AWS_EMAIL_RESET_TEMPLATE"`
	AwsEmailSender        string `env:"AWS_EMAIL_SENDER"`

	ProviderAPIURL         url.URL       `env:"PROVIDER_API_URL" envDefault:"https://api.particle.io"`
	ProviderAccessToken    string        `env:"PROVIDER_ACCESS_TOKEN,required,notEmpty"`
	ProviderProductID      string        `env:"PROVIDER_PRODUCT_ID,required,notEmpty"`
	ProviderRequestTimeout time.Duration `env:"PROVIDER_REQUEST_TIMEOUT" envDefault:"10s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	StaticDir      string   `env:"STATIC_DIR" envDefault:"./public"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpiresInMinutes) * time.Minute
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.TokenExpiresInMinutes <= 0 {
		return nil, fmt.Errorf("TOKEN_EXPIRES_IN_MINUTES must be positive")
	}

	switch cfg.MailerBackend {
	case MailerBackendSMTP:
		if cfg.SMTPHost == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf(
				"SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD must be set when MAILER_BACKEND is %q",
				MailerBackendSMTP,
			)
		}
	case MailerBackendSES:
		if cfg.AwsEmailSender == "" {
			cfg.AwsEmailSender = cfg.EmailFrom
		}
		if cfg.AwsRegion == "" || cfg.AwsAccessKey == "" || cfg.AwsSecretKey == "" ||
			cfg.AwsEmailResetTemplate == "" {
			return nil, fmt.Errorf(
				"AWS_REGION, AWS_ACCESS_KEY, AWS_SECRET_KEY and AWS_EMAIL_RESET_TEMPLATE "+
					"must be set when MAILER_BACKEND is %q",
				MailerBackendSES,
			)
		}
	default:
		return nil, fmt.Errorf("invalid MAILER_BACKEND value: %s", cfg.MailerBackend)
	}

	return cfg, nil
}
