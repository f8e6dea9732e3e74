package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	Issuer          string
	AccessExpiryMin int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level string
}

// MatchingConfig holds ranking weights per candidate kind. Each set must sum to 1.
type MatchingConfig struct {
	RoommateWeights map[string]float64
	PropertyWeights map[string]float64
	RegionCredit    int
	PoolSize        int
	LockTTL         time.Duration
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := fromViper(v)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_ISSUER", "roommate-match")
	v.SetDefault("JWT_ACCESS_EXPIRY_MIN", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MATCH_REGION_CREDIT", 50)
	v.SetDefault("MATCH_POOL_SIZE", 200)
	v.SetDefault("PROFILE_LOCK_TTL", "5s")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			Env:             v.GetString("ENV"),
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
			Issuer:          v.GetString("JWT_ISSUER"),
			AccessExpiryMin: v.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Matching: MatchingConfig{
			RoommateWeights: parseWeights(v.GetString("MATCH_ROOMMATE_WEIGHTS")),
			PropertyWeights: parseWeights(v.GetString("MATCH_PROPERTY_WEIGHTS")),
			RegionCredit:    v.GetInt("MATCH_REGION_CREDIT"),
			PoolSize:        v.GetInt("MATCH_POOL_SIZE"),
			LockTTL:         v.GetDuration("PROFILE_LOCK_TTL"),
		},
	}
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis host is required when redis is enabled")
	}
	if c.Redis.Enabled && c.Matching.LockTTL <= 0 {
		return fmt.Errorf("profile lock ttl must be positive")
	}
	if c.Matching.RegionCredit < 0 || c.Matching.RegionCredit > 100 {
		return fmt.Errorf("region credit must be within [0, 100], got %d", c.Matching.RegionCredit)
	}
	if c.Matching.PoolSize < 0 {
		return fmt.Errorf("match pool size must not be negative")
	}
	for name, weights := range map[string]map[string]float64{
		"roommate": c.Matching.RoommateWeights,
		"property": c.Matching.PropertyWeights,
	} {
		for category, w := range weights {
			if math.IsNaN(w) {
				return fmt.Errorf("%s weight for %q is not a number", name, category)
			}
		}
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr returns the HTTP listen address
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseWeights reads "budget=0.4,location=0.3" pairs. Malformed pairs become
// NaN under their key so Validate reports them instead of dropping them.
func parseWeights(raw string) map[string]float64 {
	pairs := splitList(raw)
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			w = math.NaN()
		}
		out[strings.ToLower(strings.TrimSpace(key))] = w
	}
	return out
}
