package desk

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the desk configuration, read from the environment.
type Config struct {
	Addr        string        // IVD_ADDR
	CatalogFile string        // IVD_CATALOG
	Currency    string        // IVD_CURRENCY
	DraftTTL    time.Duration // IVD_DRAFT_TTL, idle drafts are dropped after it
	Rate        float64       // IVD_RATE, requests per second
	Burst       int           // IVD_BURST
	ExecutorURL string        // IVD_EXECUTOR_URL, backend purchase endpoint
	OrderLog    string        // IVD_ORDER_LOG, used when there is no executor URL
}

// DefaultConfig returns the configuration used for unset variables.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		CatalogFile: "catalog.jsonl",
		Currency:    "BRL",
		DraftTTL:    15 * time.Minute,
		Rate:        10,
		Burst:       30,
		OrderLog:    "orders.jsonl",
	}
}

// LoadConfig reads the configuration from the environment, after loading
// the given .env files (".env" if none). A missing .env file is not an error.
func LoadConfig(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		if os.IsNotExist(err) {
			log.Println("no .env file found, relying on environment variables")
		} else {
			log.Printf("warning: cannot load .env file: %v, relying on environment variables", err)
		}
	}

	c := DefaultConfig()
	c.Addr = getEnv("IVD_ADDR", c.Addr)
	c.CatalogFile = getEnv("IVD_CATALOG", c.CatalogFile)
	c.Currency = getEnv("IVD_CURRENCY", c.Currency)
	c.DraftTTL = getEnvDuration("IVD_DRAFT_TTL", c.DraftTTL)
	c.Rate = getEnvFloat("IVD_RATE", c.Rate)
	c.Burst = getEnvInt("IVD_BURST", c.Burst)
	c.ExecutorURL = getEnv("IVD_EXECUTOR_URL", c.ExecutorURL)
	c.OrderLog = getEnv("IVD_ORDER_LOG", c.OrderLog)
	return c
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s %q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvFloat(key string, fallback float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("warning: invalid %s %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		log.Printf("warning: invalid %s %q, using %d", key, v, fallback)
		return fallback
	}
	return i
}
