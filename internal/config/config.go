package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the explicit process configuration, built once at startup
// and passed by reference to the components that need it.
type Config struct {
	AppName string
	Version string
	Port    string

	UseMemoryStore bool

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	JWTSecret     string
	TokenTTLHours int

	Twilio struct {
		AccountSID string
		AuthToken  string
		FromNumber string
	}

	Push struct {
		URL    string
		APIKey string
	}

	Email struct {
		URL       string
		APIKey    string
		FromEmail string
	}

	Feed struct {
		URL    string
		APIKey string
	}

	Gateway struct {
		URL    string
		APIKey string
	}

	AMQP struct {
		URL       string
		QueueName string
	}
	QueueWorkers int

	Search struct {
		RandomMinRating  float64
		RandomMinRatings int
		RandomLimit      int
	}
}

// Load reads the environment (optionally seeded from a .env file) and
// validates the resulting configuration.
func Load() (*Config, error) {
	// Local development convenience; production supplies real env vars.
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName: "MentorLink Backend",
		Version: "1.0.0",
		Port:    getenv("PORT", "8080"),

		UseMemoryStore: getenv("USE_MEMORY_STORE", "") == "true",

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTLHours: getenvInt("TOKEN_TTL_HOURS", 72),

		QueueWorkers: getenvInt("QUEUE_WORKERS", 4),
	}

	cfg.DB.Host = getenv("DB_HOST", "localhost")
	cfg.DB.Port = getenvInt("DB_PORT", 5432)
	cfg.DB.User = getenv("DB_USER", "postgres")
	cfg.DB.Password = os.Getenv("DB_PASS")
	cfg.DB.Name = getenv("DB_NAME", "mentorlink")
	cfg.DB.SSLMode = getenv("DB_SSLMODE", "disable")

	cfg.Twilio.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Twilio.FromNumber = os.Getenv("TWILIO_PHONE_NUMBER")

	cfg.Push.URL = getenv("PUSH_GATEWAY_URL", "https://fcm.googleapis.com/fcm/send")
	cfg.Push.APIKey = os.Getenv("PUSH_GATEWAY_KEY")

	cfg.Email.URL = getenv("EMAIL_API_URL", "")
	cfg.Email.APIKey = os.Getenv("EMAIL_API_KEY")
	cfg.Email.FromEmail = getenv("EMAIL_FROM", "no-reply@mentorlink.app")

	cfg.Feed.URL = getenv("FEED_API_URL", "")
	cfg.Feed.APIKey = os.Getenv("FEED_API_KEY")

	cfg.Gateway.URL = getenv("PAYMENT_GATEWAY_URL", "")
	cfg.Gateway.APIKey = os.Getenv("PAYMENT_GATEWAY_KEY")

	cfg.AMQP.URL = os.Getenv("AMQP_URL")
	cfg.AMQP.QueueName = getenv("AMQP_QUEUE", "notification.dispatch")

	cfg.Search.RandomMinRating = getenvFloat("SEARCH_RANDOM_MIN_RATING", 4.0)
	cfg.Search.RandomMinRatings = getenvInt("SEARCH_RANDOM_MIN_RATINGS", 3)
	cfg.Search.RandomLimit = getenvInt("SEARCH_RANDOM_LIMIT", 10)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !c.UseMemoryStore && c.DB.Name == "" {
		return fmt.Errorf("DB_NAME is required when not using the memory store")
	}
	if c.QueueWorkers < 1 {
		return fmt.Errorf("QUEUE_WORKERS must be at least 1")
	}
	if c.Search.RandomLimit < 1 {
		return fmt.Errorf("SEARCH_RANDOM_LIMIT must be at least 1")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
