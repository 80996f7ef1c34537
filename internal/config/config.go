package config

import (
	"errors"
	"sync"

	"github.com/spf13/viper"
)

// Media providers understood by clients/media.
const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderLocal      = "local"
)

// Config holds all application configuration
type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	BcryptCost            int    `mapstructure:"BCRYPT_COST"`
	LoginRatePerMin       int    `mapstructure:"LOGIN_RATE_PER_MIN"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	LogFormat             string `mapstructure:"LOG_FORMAT"`
	LogFile               string `mapstructure:"LOG_FILE"`
	MongoURI              string `mapstructure:"MONGO_URI"`
	MongoDBName           string `mapstructure:"MONGO_DB_NAME"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	JWTAlgorithm          string `mapstructure:"JWT_ALGORITHM"`
	AccessTokenHours      int    `mapstructure:"ACCESS_TOKEN_HOURS"`
	AuthRequired          bool   `mapstructure:"AUTH_REQUIRED"`
	RequestLoggingEnabled bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
	RouteMetricsEnabled   bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	WSMaxSessionSec       int    `mapstructure:"WS_MAX_SESSION_SEC"`
	WSOutboxBuffer        int    `mapstructure:"WS_OUTBOX_BUFFER"`
	MediaProvider         string `mapstructure:"MEDIA_PROVIDER"`
	CloudinaryURL         string `mapstructure:"CLOUDINARY_URL"`
	CloudName             string `mapstructure:"CLOUD"`
	CloudAPIKey           string `mapstructure:"API_KEY"`
	CloudAPISecret        string `mapstructure:"API_SECRET"`
	CloudFolder           string `mapstructure:"CLOUD_FOLDER"`
	UploadDir             string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB           int    `mapstructure:"MAX_UPLOAD_MB"`
	PyroscopeAddr         string `mapstructure:"PYROSCOPE_SERVER_ADDRESS"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	v.SetDefault("APP_PORT", 5001)
	v.SetDefault("BCRYPT_COST", 9)
	v.SetDefault("LOGIN_RATE_PER_MIN", 20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB_NAME", "mentormatch")
	v.SetDefault("JWT_SECRET", "this-is-a-default-jwt-secret-key-with-32-plus-characters")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("ACCESS_TOKEN_HOURS", 26)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("REQUEST_LOGGING_ENABLED", true)
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("WS_MAX_SESSION_SEC", 900)
	v.SetDefault("WS_OUTBOX_BUFFER", 64)
	v.SetDefault("MEDIA_PROVIDER", MediaProviderLocal)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("CLOUD", "")
	v.SetDefault("API_KEY", "")
	v.SetDefault("API_SECRET", "")
	v.SetDefault("CLOUD_FOLDER", "mentormatch")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_MB", 5)
	v.SetDefault("PYROSCOPE_SERVER_ADDRESS", "")

	// Configure Viper to read from .env file (if present)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validation errors returned by Config.Validate.
var (
	ErrAppPortRange            = errors.New("APP_PORT must be between 1 and 65535")
	ErrBcryptCostRange         = errors.New("BCRYPT_COST must be between 4 and 16")
	ErrLoginRatePerMin         = errors.New("LOGIN_RATE_PER_MIN must be greater than or equal to 1")
	ErrLogLevelEmpty           = errors.New("LOG_LEVEL cannot be empty")
	ErrLogFormatEmpty          = errors.New("LOG_FORMAT cannot be empty")
	ErrMongoURIEmpty           = errors.New("MONGO_URI cannot be empty")
	ErrMongoDBNameEmpty        = errors.New("MONGO_DB_NAME cannot be empty")
	ErrJWTSecretRequired       = errors.New("JWT_SECRET cannot be empty")
	ErrJWTSecretTooShort       = errors.New("JWT_SECRET must be at least 32 characters for HS256")
	ErrJWTAlgorithmUnsupported = errors.New("JWT_ALGORITHM must be HS256")
	ErrAccessTokenHours        = errors.New("ACCESS_TOKEN_HOURS must be greater than 0")
	ErrWSMaxSessionSec         = errors.New("WS_MAX_SESSION_SEC must be greater than 0")
	ErrWSOutboxBuffer          = errors.New("WS_OUTBOX_BUFFER must be greater than 0")
	ErrMaxUploadMB             = errors.New("MAX_UPLOAD_MB must be greater than 0")
	ErrMediaProvider           = errors.New("MEDIA_PROVIDER must be either cloudinary or local")
	ErrCloudinaryCredentials   = errors.New("cloudinary media provider requires CLOUDINARY_URL or CLOUD, API_KEY and API_SECRET")
	ErrUploadDirEmpty          = errors.New("UPLOAD_DIR cannot be empty for the local media provider")
)

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return ErrAppPortRange
	}
	if c.BcryptCost < 4 || c.BcryptCost > 16 {
		return ErrBcryptCostRange
	}
	if c.LoginRatePerMin < 1 {
		return ErrLoginRatePerMin
	}
	if c.LogLevel == "" {
		return ErrLogLevelEmpty
	}
	if c.LogFormat == "" {
		return ErrLogFormatEmpty
	}
	if c.MongoURI == "" {
		return ErrMongoURIEmpty
	}
	if c.MongoDBName == "" {
		return ErrMongoDBNameEmpty
	}
	if c.JWTSecret == "" {
		return ErrJWTSecretRequired
	}
	if c.JWTAlgorithm != "HS256" {
		return ErrJWTAlgorithmUnsupported
	}
	if len(c.JWTSecret) < 32 {
		return ErrJWTSecretTooShort
	}
	if c.AccessTokenHours <= 0 {
		return ErrAccessTokenHours
	}
	if c.WSMaxSessionSec <= 0 {
		return ErrWSMaxSessionSec
	}
	if c.WSOutboxBuffer <= 0 {
		return ErrWSOutboxBuffer
	}
	if c.MaxUploadMB <= 0 {
		return ErrMaxUploadMB
	}
	switch c.MediaProvider {
	case MediaProviderCloudinary:
		if c.CloudinaryURL == "" && (c.CloudName == "" || c.CloudAPIKey == "" || c.CloudAPISecret == "") {
			return ErrCloudinaryCredentials
		}
	case MediaProviderLocal:
		if c.UploadDir == "" {
			return ErrUploadDirEmpty
		}
	default:
		return ErrMediaProvider
	}
	return nil
}
