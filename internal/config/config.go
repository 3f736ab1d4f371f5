package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	SessionTTL   time.Duration
	SessionCache bool
}

type StorageConfig struct {
	Endpoint     string
	PublicURL    string
	AccessKey    string
	SecretKey    string
	BucketImages string
	UseSSL       bool
	Region       string
}

type SecurityConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	CookieDomain  string
	CookieSecure  bool
	MaxSessions   int
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CaptchaConfig struct {
	VerifyURL string
	Secret    string
	Timeout   time.Duration
}

type GateConfig struct {
	PublicRoutes     []string
	ExcludedPrefixes []string
	AssetPrefixes    []string
	LoginPath        string
	DashboardPath    string
}

type RateLimitConfig struct {
	LoginAttempts int
	LoginWindow   time.Duration
}

type QueueConfig struct {
	Stream        string
	Group         string
	Consumer      string
	ClaimInterval time.Duration
}

type JobsConfig struct {
	SessionCleanup string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	Backend          BackendConfig
	Captcha          CaptchaConfig
	Gate             GateConfig
	RateLimit        RateLimitConfig
	Queue            QueueConfig
	Jobs             JobsConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("HOTELHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Security.SessionSecret == "" && cfg.Environment == "production" {
		return nil, errors.New("security.sessionsecret is required in production")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 20)
	v.SetDefault("postgres.maxidle", 5)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.sessionttl", "1m")
	v.SetDefault("redis.sessioncache", true)

	v.SetDefault("storage.bucketimages", "hotel-images")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("security.sessionsecret", "dev-session-secret")
	v.SetDefault("security.sessionttl", "720h") // 30 days
	v.SetDefault("security.cookiename", "hotelhub_session")
	v.SetDefault("security.cookiesecure", false)
	v.SetDefault("security.maxsessions", 10)

	v.SetDefault("backend.baseurl", "http://127.0.0.1:8080/api")
	v.SetDefault("backend.timeout", "10s")

	v.SetDefault("captcha.verifyurl", "https://www.google.com/recaptcha/api/siteverify")
	v.SetDefault("captcha.timeout", "5s")

	v.SetDefault("gate.publicroutes", []string{
		"/",
		"/auth/login",
		"/auth/register",
		"/auth/forgot-password",
		"/auth/reset-password",
		"/auth/verify-account",
	})
	v.SetDefault("gate.excludedprefixes", []string{
		"/api",
		"/assets",
		"/static",
		"/metrics",
		"/favicon.ico",
		"/robots.txt",
	})
	v.SetDefault("gate.assetprefixes", []string{"/assets", "/static", "/images", "/fonts"})
	v.SetDefault("gate.loginpath", "/auth/login")
	v.SetDefault("gate.dashboardpath", "/dashboard")

	v.SetDefault("ratelimit.loginattempts", 10)
	v.SetDefault("ratelimit.loginwindow", "15m")

	v.SetDefault("queue.stream", "hotelhub:tasks")
	v.SetDefault("queue.group", "hotelhub-workers")
	v.SetDefault("queue.consumer", "worker-1")
	v.SetDefault("queue.claiminterval", "30s")

	v.SetDefault("jobs.sessioncleanup", "0 0 3 * * *")
}
