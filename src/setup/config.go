package setup

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/maddiesch/serverless/sam"
)

const (
	envDevelopment = "development"
)

// Config holds the function configuration
type Config struct {
	// Store
	Endpoint            string
	ProjectID           string
	APIKey              string
	APIKeyParameterName string
	Tables              Tables

	// Identity
	UserPoolID string

	// Seeding
	Preset           string
	WriteStrategy    string
	WriteConcurrency int
	OffsetHours      int

	Environment string
	DryRun      bool
}

// LoadConfig reads configuration from environment variables. Under SAM local
// a .env file in the working directory is read first.
func LoadConfig() Config {
	if sam.IsLocal() && !IsTest() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			reportError(err)
		}
	}

	database := os.Getenv("SETUP_DATABASE_ID")
	tables := DefaultTables(database)
	tables.Profiles = getEnv("SETUP_PROFILES_TABLE_ID", tables.Profiles)
	tables.Calendars = getEnv("SETUP_CALENDARS_TABLE_ID", tables.Calendars)
	tables.Etiquettes = getEnv("SETUP_ETIQUETTES_TABLE_ID", tables.Etiquettes)
	tables.Events = getEnv("SETUP_EVENTS_TABLE_ID", tables.Events)

	return Config{
		Endpoint:            os.Getenv("SETUP_API_ENDPOINT"),
		ProjectID:           os.Getenv("SETUP_PROJECT_ID"),
		APIKey:              os.Getenv("SETUP_API_KEY"),
		APIKeyParameterName: os.Getenv("SETUP_API_KEY_PARAMETER_NAME"),
		Tables:              tables,
		UserPoolID:          os.Getenv("SETUP_USER_POOL_ID"),
		Preset:              getEnv("SETUP_PRESET", DefaultPreset),
		WriteStrategy:       getEnv("SETUP_WRITE_STRATEGY", StrategySequential),
		WriteConcurrency:    getEnvAsInt("SETUP_WRITE_CONCURRENCY", defaultConcurrency),
		OffsetHours:         getEnvAsInt("SETUP_TIMEZONE_OFFSET_HOURS", DefaultOffsetHours),
		Environment:         getEnv("SETUP_ENV", "production"),
		DryRun:              os.Getenv("SETUP_DRY_RUN") == "true",
	}
}

// Validate reports configuration the function cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tables.Database) == "" {
		return configurationMissing("SETUP_DATABASE_ID")
	}
	for _, kind := range []Kind{KindProfile, KindCalendar, KindEtiquette, KindEvent} {
		if c.Tables.Collection(kind) == "" {
			return configurationMissing("the " + string(kind) + " table id")
		}
	}
	return nil
}

// IsDevelopment returns true when failure details may be returned to callers.
func (c Config) IsDevelopment() bool {
	return c.Environment == envDevelopment
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
