package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

type Config struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
	MaxBodyBytes       int64
	AllowedOrigins     string
	APIKey             string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBLoc              string
	DBRunMigrations    bool
	MailDriver         string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPass           string
	SMTPFrom           string
	SMTPTLSPolicy      string
	SMTPTimeout        time.Duration
	TempPasswordTTL    time.Duration
	TempPasswordLength int
	HashIterations     int
	LogLevel           string
	LogFormat          string
}

// Load reads configuration from the environment. Values in a local .env file
// are applied first when the file exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		ReadTimeout:        getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:        getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		APIKey:             getEnv("API_KEY", ""),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "root"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "bbb"),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		DBRunMigrations:    getEnvBool("DB_RUN_MIGRATIONS", true),
		DBLoc:              getEnv("DB_LOC", "Local"),
		MailDriver:         strings.ToLower(getEnv("MAIL_DRIVER", MailDriverSMTP)),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USERNAME", ""),
		SMTPPass:           getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:           getEnv("SMTP_FROM", ""),
		SMTPTLSPolicy:      strings.ToLower(getEnv("SMTP_TLS", "mandatory")),
		SMTPTimeout:        getEnvDuration("SMTP_TIMEOUT", 10*time.Second),
		TempPasswordTTL:    getEnvDuration("TEMP_PASSWORD_TTL", 5*time.Minute),
		TempPasswordLength: getEnvInt("TEMP_PASSWORD_LENGTH", 8),
		HashIterations:     getEnvInt("PASSWORD_HASH_ITERATIONS", 600000),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.TempPasswordTTL <= 0 {
		errs = append(errs, errors.New("TEMP_PASSWORD_TTL must be positive"))
	}
	if c.TempPasswordLength <= 0 {
		errs = append(errs, errors.New("TEMP_PASSWORD_LENGTH must be positive"))
	}
	if c.HashIterations <= 0 {
		errs = append(errs, errors.New("PASSWORD_HASH_ITERATIONS must be positive"))
	}
	if _, err := time.LoadLocation(c.DBLoc); err != nil {
		errs = append(errs, fmt.Errorf("unknown DB_LOC %q: %w", c.DBLoc, err))
	}
	switch c.MailDriver {
	case MailDriverSMTP:
		if c.SMTPFrom == "" {
			errs = append(errs, errors.New("SMTP_FROM must be set for the smtp mail driver"))
		}
		switch c.SMTPTLSPolicy {
		case "mandatory", "opportunistic", "none":
		default:
			errs = append(errs, fmt.Errorf("unknown SMTP_TLS policy %q", c.SMTPTLSPolicy))
		}
	case MailDriverLog:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = c.location()
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// location is the zone DATETIME columns are read and written in. Empty or
// unknown names mean the host's local zone.
func (c *Config) location() *time.Location {
	if c.DBLoc == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DBLoc)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
