package config

import (
	"os"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Addr   string
	AppURL string
	Logs   LogConfig
	DB     PostgresConfig
	Stripe StripeConfig
	OpenAI OpenAIConfig
}

type LogConfig struct {
	Style string
	Level string
}

type PostgresConfig struct {
	Username string
	Password string
	URL      string
	Port     string
}

type StripeConfig struct {
	SecretKey         string
	WebhookSecret     string
	PriceIDProMonthly string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

func LoadConfig() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	cfg := &Config{
		Addr:   addr,
		AppURL: os.Getenv("APP_URL"),
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		DB: PostgresConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PWD"),
			URL:      os.Getenv("POSTGRES_URL"),
			Port:     os.Getenv("POSTGRES_PORT"),
		},
		Stripe: StripeConfig{
			SecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceIDProMonthly: os.Getenv("STRIPE_PRICE_ID_PRO_MONTHLY"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  model,
		},
	}

	return cfg, nil
}
