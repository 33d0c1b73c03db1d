package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Clinic server the form talks to
	ClinicBaseURL string
	DoctorsPath   string
	SlotsPath     string
	SubmitPath    string
	ListingURL    string
	HTTPTimeout   time.Duration

	// Success redirect behaviour: "button" or "countdown"
	RedirectStyle             string
	RedirectCountdownDuration time.Duration
	RedirectCountdownSteps    int

	// Simulator server
	SimPort string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ClinicBaseURL: getEnv("CLINIC_BASE_URL", "http://localhost:8000"),
		DoctorsPath:   getEnv("CLINIC_DOCTORS_PATH", "/consultas/medicos_por_especialidade/"),
		SlotsPath:     getEnv("CLINIC_SLOTS_PATH", "/consultas/horarios_disponiveis/"),
		SubmitPath:    getEnv("CLINIC_SUBMIT_PATH", "/consultas/nova/"),
		ListingURL:    getEnv("CLINIC_LISTING_URL", "/consultas/"),
		HTTPTimeout:   getEnvAsDuration("CLINIC_HTTP_TIMEOUT", 10*time.Second),

		RedirectStyle:             strings.ToLower(strings.TrimSpace(getEnv("REDIRECT_STYLE", "button"))),
		RedirectCountdownDuration: getEnvAsDuration("REDIRECT_COUNTDOWN_DURATION", 2250*time.Millisecond),
		RedirectCountdownSteps:    getEnvAsInt("REDIRECT_COUNTDOWN_STEPS", 25),

		SimPort: getEnv("SIM_PORT", "8000"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
