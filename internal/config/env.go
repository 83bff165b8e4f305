package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr         string
	GinMode         string
	Timezone        string
	DataSource      string // mysql | memory
	DB              DBConfig
	SessionBackend  string // memory | redis
	Redis           RedisConfig
	SessionTTL      time.Duration
	SearchTimeout   time.Duration
	JWTSecret       string
	JWTTTL          time.Duration
	CORSOrigins     []string
	PassengerPolicy string // simple | flexible
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC&clientFoundRows=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoadEnv reads .env (optional) and the process environment.
func LoadEnv() (Env, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	// .env is optional; environment variables still apply
	_ = v.ReadInConfig()
	return LoadEnvFrom(v)
}

// LoadEnvFrom binds an already prepared viper instance.
func LoadEnvFrom(v *viper.Viper) (Env, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	env := Env{
		AppAddr:        strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:        strings.TrimSpace(v.GetString("GIN_MODE")),
		Timezone:       strings.TrimSpace(v.GetString("APP_TIMEZONE")),
		DataSource:     strings.ToLower(strings.TrimSpace(v.GetString("DATA_SOURCE"))),
		SessionBackend: strings.ToLower(strings.TrimSpace(v.GetString("SESSION_BACKEND"))),
		DB: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		SearchTimeout:   v.GetDuration("SEARCH_TIMEOUT"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTTTL:          v.GetDuration("JWT_TTL"),
		PassengerPolicy: strings.ToLower(strings.TrimSpace(v.GetString("PASSENGER_POLICY"))),
	}
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			env.CORSOrigins = append(env.CORSOrigins, o)
		}
	}

	if err := env.Validate(); err != nil {
		return Env{}, fmt.Errorf("config validation failed: %w", err)
	}
	return env, nil
}

func (e Env) Validate() error {
	switch e.DataSource {
	case "mysql", "memory":
	default:
		return fmt.Errorf("DATA_SOURCE harus mysql atau memory, bukan %q", e.DataSource)
	}
	switch e.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND harus memory atau redis, bukan %q", e.SessionBackend)
	}
	switch e.PassengerPolicy {
	case "simple", "flexible":
	default:
		return fmt.Errorf("PASSENGER_POLICY harus simple atau flexible, bukan %q", e.PassengerPolicy)
	}
	if e.SearchTimeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT harus > 0")
	}
	if strings.TrimSpace(e.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET wajib diisi")
	}
	if _, err := time.LoadLocation(e.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE tidak valid: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("DATA_SOURCE", "memory")

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "shiptix")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "10m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")

	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SEARCH_TIMEOUT", "10s")

	v.SetDefault("JWT_SECRET", "shiptix-dev-secret")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("PASSENGER_POLICY", "simple")
}
