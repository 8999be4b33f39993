package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable of the point-of-sale client. Tax rates are in
// basis points so the composition (VAT only, or VAT plus a small-business
// surtax) is an external configuration value rather than code.
type Config struct {
	AppEnv string

	// Collaborator API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Catalog search
	SearchDebounce   time.Duration
	SearchRatePerSec float64
	SearchBurst      int
	CatalogCacheSize int

	// Tax policy
	VATRateBP    int64
	SurtaxRateBP int64

	// Order header defaults for counter sales
	StaffID         int64
	CustomerID      int64
	DeliveryAddress string
	OrderStatus     string
	PaymentStatus   string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:           os.Getenv("APP_ENV"),
		APIBaseURL:       getEnv("POS_API_URL", "http://localhost:8000"),
		HTTPTimeout:      getMillis("POS_HTTP_TIMEOUT_MS", 15000),
		SearchDebounce:   getMillis("SEARCH_DEBOUNCE_MS", 300),
		SearchRatePerSec: getFloat("SEARCH_RATE_PER_SEC", 20),
		SearchBurst:      int(getInt("SEARCH_BURST", 40)),
		CatalogCacheSize: int(getInt("CATALOG_CACHE_SIZE", 128)),
		VATRateBP:        getInt("TAX_VAT_BP", 1000),
		SurtaxRateBP:     getInt("TAX_SURTAX_BP", 0),
		StaffID:          getInt("POS_STAFF_ID", 1),
		CustomerID:       getInt("POS_CUSTOMER_ID", 1),
		DeliveryAddress:  getEnv("POS_DELIVERY_ADDRESS", "At the counter"),
		OrderStatus:      getEnv("POS_ORDER_STATUS", "COMPLETED"),
		PaymentStatus:    getEnv("POS_PAYMENT_STATUS", "PAID"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getMillis(key string, fallback int64) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Millisecond
}
