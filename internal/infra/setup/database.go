package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseOptions 描述数据库连接参数。
// Driver 为 mysql (默认)、postgres 或 sqlite；sqlite 时 Name 为文件路径或 ":memory:"。
type DatabaseOptions struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Debug    bool   `yaml:"debug"`
}

// DSN 根据驱动构建连接字符串
func (o DatabaseOptions) DSN() (string, error) {
	switch o.Driver {
	case "", "mysql":
		if o.User == "" {
			return "", fmt.Errorf("DB_USER must be set for mysql")
		}
		host, port := orDefault(o.Host, "127.0.0.1"), orDefault(o.Port, "3306")
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.User, o.Password, host, port, orDefault(o.Name, "tracks")), nil
	case "postgres":
		if o.User == "" {
			return "", fmt.Errorf("DB_USER must be set for postgres")
		}
		host, port := orDefault(o.Host, "127.0.0.1"), orDefault(o.Port, "5432")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			host, o.User, o.Password, orDefault(o.Name, "tracks"), port), nil
	case "sqlite":
		return orDefault(o.Name, "tracks.db"), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", o.Driver)
	}
}

// InitDB 初始化数据库连接
func InitDB(opts DatabaseOptions) (*gorm.DB, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dialector = mysql.Open(dsn)
	}

	gormCfg := &gorm.Config{TranslateError: true}
	if opts.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if opts.Driver == "sqlite" {
		// 内存库每个连接都是独立的数据库，只能保留一个连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	logrus.WithField("driver", dialector.Name()).Info("Database connected")
	return db, nil
}

// InitRedis 初始化 Redis 连接并 Ping 检查
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	logrus.WithField("addr", addr).Info("Redis connected")
	return client, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
