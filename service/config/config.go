/*
 * @module service/config/config
 * @description 服务配置，全部来自环境变量
 * @architecture 分层架构 - 配置层
 * @documentReference DESIGN.md
 * @stateFlow 读取环境变量 -> 类型转换 -> 默认值 -> 校验
 * @rules 未设置的变量使用默认值；取值非法时启动失败
 * @dependencies github.com/spf13/cast
 * @refs service/init.go, main.go
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// 数据库驱动
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	Schema     string
	SQLitePath string
}

// DatasetConfig 数据集配置
type DatasetConfig struct {
	Source        string
	Path          string
	Encoding      string
	Sheet         string
	Fixture       string
	Watch         bool
	ReloadCron    string
	NotifyChannel string
	Seed          bool
}

// RedisConfig Redis配置，Host为空时不启用视图缓存
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig Kafka配置，Brokers为空时不发布事件
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config 服务配置
type Config struct {
	Port         int
	BaseContext  string
	LogLevel     string
	ProfilesPath string
	Database     DatabaseConfig
	Dataset      DatasetConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	port, err := cast.ToIntE(getEnvWithDefault("LISTEN_PORT", "80"))
	if err != nil {
		return nil, fmt.Errorf("LISTEN_PORT 非法: %w", err)
	}
	watch, err := cast.ToBoolE(getEnvWithDefault("DATASET_WATCH", "false"))
	if err != nil {
		return nil, fmt.Errorf("DATASET_WATCH 非法: %w", err)
	}
	seed, err := cast.ToBoolE(getEnvWithDefault("DATASET_SEED", "true"))
	if err != nil {
		return nil, fmt.Errorf("DATASET_SEED 非法: %w", err)
	}
	redisDB, err := cast.ToIntE(getEnvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB 非法: %w", err)
	}
	ttl, err := cast.ToDurationE(getEnvWithDefault("VIEW_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("VIEW_CACHE_TTL 非法: %w", err)
	}

	cfg := &Config{
		Port:         port,
		BaseContext:  os.Getenv("BASE_CONTEXT"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
		ProfilesPath: os.Getenv("PROFILES_PATH"),
		Database: DatabaseConfig{
			Driver:     getEnvWithDefault("DB_DRIVER", DriverPostgres),
			URL:        os.Getenv("DATABASE_URL"),
			Host:       getEnvWithDefault("DB_HOST", "localhost"),
			Port:       getEnvWithDefault("DB_PORT", "5432"),
			User:       getEnvWithDefault("DB_USER", "postgres"),
			Password:   getEnvWithDefault("DB_PASSWORD", "postgres"),
			Name:       getEnvWithDefault("DB_NAME", "postgres"),
			SSLMode:    getEnvWithDefault("DB_SSLMODE", "disable"),
			Schema:     getEnvWithDefault("DB_SCHEMA", "public"),
			SQLitePath: getEnvWithDefault("SQLITE_PATH", "hrdash.db"),
		},
		Dataset: DatasetConfig{
			Source:        getEnvWithDefault("DATASET_SOURCE", "database"),
			Path:          os.Getenv("DATASET_PATH"),
			Encoding:      getEnvWithDefault("DATASET_ENCODING", "utf-8"),
			Sheet:         os.Getenv("DATASET_SHEET"),
			Fixture:       getEnvWithDefault("DATASET_FIXTURE", "hr"),
			Watch:         watch,
			ReloadCron:    os.Getenv("DATASET_RELOAD_CRON"),
			NotifyChannel: os.Getenv("DB_NOTIFY_CHANNEL"),
			Seed:          seed,
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvWithDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      ttl,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnvWithDefault("KAFKA_TOPIC", "hrdash.dataset"),
		},
	}
	return cfg, cfg.Validate()
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate 校验配置组合
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverNone:
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	switch c.Dataset.Source {
	case "database":
		if c.Database.Driver == DriverNone {
			return fmt.Errorf("DATASET_SOURCE=database 需要配置数据库")
		}
	case "csv", "xlsx":
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_SOURCE=%s 需要设置 DATASET_PATH", c.Dataset.Source)
		}
	case "fixture":
	default:
		return fmt.Errorf("不支持的数据集来源: %s", c.Dataset.Source)
	}
	if c.Dataset.Watch && c.Dataset.Path == "" {
		return fmt.Errorf("DATASET_WATCH 需要设置 DATASET_PATH")
	}
	return nil
}

// PostgresDSN 构建PostgreSQL连接字符串，优先使用 DATABASE_URL
func (d DatabaseConfig) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.Schema)
}

// ListenerDSN 供 LISTEN 使用的连接字符串，不带 search_path 和 TimeZone
func (d DatabaseConfig) ListenerDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
