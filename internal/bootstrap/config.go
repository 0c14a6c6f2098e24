package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"tracks-graphql/internal/infra/setup"
)

// Config 存储从配置文件、.env 和环境变量加载的配置。
// 优先级：环境变量 > .env > CONFIG_FILE 指定的 YAML 文件 > 默认值。
type Config struct {
	Database        setup.DatabaseOptions `yaml:"database"`
	RedisAddr       string                `yaml:"redis_addr"`
	RedisPassword   string                `yaml:"redis_password"`
	RedisDB         int                   `yaml:"redis_db"`
	KeyPrefix       string                `yaml:"key_prefix"`
	JWTSecret       string                `yaml:"jwt_secret"`
	ServerPort      string                `yaml:"server_port"`
	LogLevel        string                `yaml:"log_level"`
	AppEnv          string                `yaml:"app_env"` // development/production
	CORSOrigin      string                `yaml:"cors_origin"`
	TrustedProxies  []string              `yaml:"trusted_proxies"` // 为空时不信任任何代理头
	RateLimitMax    int                   `yaml:"rate_limit_max"`
	RateLimitWindow time.Duration         `yaml:"rate_limit_window"`
	PasswordCost    int                   `yaml:"password_cost"`
	MaxQueryDepth   int                   `yaml:"max_query_depth"`
	AutoMigrate     bool                  `yaml:"auto_migrate"`
}

func defaultConfig() *Config {
	return &Config{
		Database:        setup.DatabaseOptions{Driver: "mysql"},
		KeyPrefix:       "tracks:",
		ServerPort:      "8080",
		LogLevel:        "info",
		AppEnv:          "development",
		CORSOrigin:      "http://localhost:3000",
		RateLimitMax:    100,
		RateLimitWindow: time.Second,
		MaxQueryDepth:   10,
		AutoMigrate:     true,
	}
}

// LoadConfig 加载配置
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// 加载 .env 文件 (如果存在)，不覆盖已有环境变量
	_ = godotenv.Load()
	applyEnv(cfg)

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("rate limit must be positive (max=%d, window=%s)", cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setBool(&cfg.Database.Debug, "DB_DEBUG")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setInt(&cfg.RedisDB, "REDIS_DB")
	setString(&cfg.KeyPrefix, "REDIS_KEY_PREFIX")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.CORSOrigin, "CORS_ALLOWED_ORIGIN")
	setInt(&cfg.RateLimitMax, "RATE_LIMIT_MAX")
	setInt(&cfg.PasswordCost, "PASSWORD_HASH_COST")
	setInt(&cfg.MaxQueryDepth, "GRAPHQL_MAX_DEPTH")
	setBool(&cfg.AutoMigrate, "DB_AUTO_MIGRATE")
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RateLimitWindow = d
		} else {
			logrus.Warnf("Invalid RATE_LIMIT_WINDOW '%s', keeping %s", v, cfg.RateLimitWindow)
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		} else {
			logrus.Warnf("Invalid %s '%s', keeping %d", key, v, *dst)
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		} else {
			logrus.Warnf("Invalid %s '%s', keeping %t", key, v, *dst)
		}
	}
}
