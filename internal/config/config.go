package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

const AppName = "stowpilot-api"

type Config struct {
	Env     string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Auth
	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
	TokenTTL      time.Duration
	SecureCookies bool

	// Shared secret for machine-to-machine account routes.
	ServiceToken string

	// SendGrid
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string
	SendGridSandbox   bool

	// Stripe
	StripeSecretKey string

	// Twilio (phone lookups; optional)
	TwilioAccountSID string
	TwilioAuthToken  string

	// Cron spec for the overdue-invoice sweep.
	OverdueSweepSpec string

	SeedDemoData bool
}

// LoadConfig reads everything from the environment and fatals on anything
// the service cannot run without.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg := &Config{
		Env:     mustEnv("ENV"),
		AppPort: mustEnv("APP_PORT"),
		AppUrl:  mustEnv("APP_URL"),
		DBUrl:   mustEnv("DB_URL"),

		ServiceToken: mustEnv("SERVICE_TOKEN"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromName:  envOr("SENDGRID_FROM_NAME", "StowPilot"),
		SendGridFromEmail: envOr("SENDGRID_FROM_EMAIL", "no-reply@stowpilot.dev"),
		SendGridSandbox:   boolEnv("SENDGRID_SANDBOX_MODE", false),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),

		OverdueSweepSpec: envOr("OVERDUE_SWEEP_CRON", "15 * * * *"),
		SeedDemoData:     boolEnv("SEED_DEMO_DATA", false),
		SecureCookies:    boolEnv("SECURE_COOKIES", true),
	}

	cfg.TokenTTL = durationEnv("TOKEN_TTL", 24*time.Hour)

	cfg.RSAPrivateKey = loadRSAPrivateKey(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	cfg.RSAPublicKey = loadRSAPublicKey(mustEnv("RSA_PUBLIC_KEY_BASE64"))

	if cfg.SendGridAPIKey == "" {
		utils.Logger.Warn("SENDGRID_API_KEY not set; emails will be skipped")
	}
	if cfg.StripeSecretKey == "" {
		utils.Logger.Warn("STRIPE_SECRET_KEY not set; card charging disabled")
	}
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		utils.Logger.Warn("Twilio credentials not set; phone numbers validated by shape only")
	}

	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Fatalf("%s env var is not a bool: %q", key, v)
	}
	return b
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Logger.Fatalf("%s env var is not a duration: %q", key, v)
	}
	return d
}

func loadRSAPrivateKey(b64 string) *rsa.PrivateKey {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PRIVATE_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pemBytes); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}
	return key
}

func loadRSAPublicKey(b64 string) *rsa.PublicKey {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pemBytes); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	return key
}
