package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	StoreDriver       string        `mapstructure:"STORE_DRIVER"`
	MongoURI          string        `mapstructure:"MONGODB_URI"`
	MongoDatabase     string        `mapstructure:"MONGODB_DATABASE"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	RazorpayKeyID     string        `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string        `mapstructure:"RAZORPAY_KEY_SECRET"`
	PaymentCurrency   string        `mapstructure:"PAYMENT_CURRENCY"`
	FrontendURL       string        `mapstructure:"FRONTEND_URL"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	RateLimitMax      int           `mapstructure:"RATE_LIMIT_MAX"`
	LoginRateLimitMax int           `mapstructure:"LOGIN_RATE_LIMIT_MAX"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"STORE_DRIVER":         DriverMongo,
	"MONGODB_URI":          "mongodb://localhost:27017",
	"MONGODB_DATABASE":     "ecommerce",
	"JWT_SECRET":           "",
	"JWT_TTL":              "720h",
	"RAZORPAY_KEY_ID":      "",
	"RAZORPAY_KEY_SECRET":  "",
	"PAYMENT_CURRENCY":     "INR",
	"FRONTEND_URL":         "",
	"REQUEST_TIMEOUT":      "10s",
	"RATE_LIMIT_MAX":       100,
	"LOGIN_RATE_LIMIT_MAX": 5,
	"RATE_LIMIT_WINDOW":    "15m",
}

// Load reads .env (if any), then the optional file named by CONFIG_FILE, then
// the process environment. Later sources win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.PaymentCurrency = strings.ToUpper(cfg.PaymentCurrency)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RazorpayKeySecret == "" {
		log.Warn("RAZORPAY_KEY_SECRET is empty; online payments cannot be verified")
	}
	return nil
}

// AllowedOrigins is the CORS origin list.
func (c Config) AllowedOrigins() string {
	origins := []string{"http://localhost"}
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return strings.Join(origins, ",")
}
