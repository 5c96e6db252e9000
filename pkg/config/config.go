package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API    APIConfig
	Auth   AuthConfig
	Log    LogConfig
	Study  StudyConfig
	Search SearchConfig
}

// APIConfig points the client at the remote LMS API.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// AuthConfig controls local token persistence.
type AuthConfig struct {
	TokenFile string
}

type LogConfig struct {
	Level  string
	Format string
}

// StudyConfig tunes the lesson study flow.
type StudyConfig struct {
	PollInterval   time.Duration
	PushStep       int
	VideoThreshold int
}

// SearchConfig tunes list pages.
type SearchConfig struct {
	Debounce time.Duration
	PageSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; defaults and the environment cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL:    strings.TrimRight(v.GetString("API_URL"), "/"),
		Timeout:    parseDuration(v.GetString("API_TIMEOUT"), 30*time.Second),
		MaxRetries: v.GetInt("API_MAX_RETRIES"),
		RetryBase:  parseDuration(v.GetString("API_RETRY_BASE"), time.Second),
	}

	cfg.Auth = AuthConfig{TokenFile: v.GetString("TOKEN_FILE")}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Study = StudyConfig{
		PollInterval:   parseDuration(v.GetString("STUDY_POLL_INTERVAL"), 3*time.Second),
		PushStep:       v.GetInt("STUDY_PUSH_STEP"),
		VideoThreshold: v.GetInt("STUDY_VIDEO_THRESHOLD"),
	}

	cfg.Search = SearchConfig{
		Debounce: parseDuration(v.GetString("SEARCH_DEBOUNCE"), 300*time.Millisecond),
		PageSize: v.GetInt("SEARCH_PAGE_SIZE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("API_URL", "http://localhost:5038/api")
	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("API_MAX_RETRIES", 3)
	v.SetDefault("API_RETRY_BASE", "1s")
	v.SetDefault("TOKEN_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STUDY_POLL_INTERVAL", "3s")
	v.SetDefault("STUDY_PUSH_STEP", 10)
	v.SetDefault("STUDY_VIDEO_THRESHOLD", 80)
	v.SetDefault("SEARCH_DEBOUNCE", "300ms")
	v.SetDefault("SEARCH_PAGE_SIZE", 10)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
