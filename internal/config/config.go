package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 存储驱动
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// 主配置结构 - 简化命名
type Config struct {
	App       App    `yaml:"app"`
	Server    Server `yaml:"server"`
	Store     Store  `yaml:"store"`
	Database  DB     `yaml:"database"`
	Cache     Cache  `yaml:"cache"`
	Auth      Auth   `yaml:"auth"`
	RateLimit Limit  `yaml:"rate_limit"`
	Link      Link   `yaml:"link"`
	Log       Log    `yaml:"log"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port            int `yaml:"port"`
	ReadTimeout     int `yaml:"read_timeout"`
	WriteTimeout    int `yaml:"write_timeout"`
	ShutdownTimeout int `yaml:"shutdown_timeout"`
}

// 记录存储配置
type Store struct {
	Driver           string `yaml:"driver"`
	DataDir          string `yaml:"data_dir"`
	SQLitePath       string `yaml:"sqlite_path"`
	ReconcileOnStart bool   `yaml:"reconcile_on_start"`
}

// 数据库配置 (driver = mysql 时使用)
type DB struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// 缓存配置（Redis）
type Cache struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// 认证配置
type Auth struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	ExpirationHours int    `yaml:"expiration_hours"`
	AdminUsername   string `yaml:"admin_username"`
	AdminPassword   string `yaml:"admin_password"`
}

// 限流配置
type Limit struct {
	Enabled   bool     `yaml:"enabled"`
	Requests  int64    `yaml:"requests_per_minute"`
	Burst     int64    `yaml:"burst"`
	SkipPaths []string `yaml:"skip_paths"`
}

// 短链接配置
type Link struct {
	BaseURL      string `yaml:"base_url"`
	CodeLength   int    `yaml:"code_length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	CloakDelayMS int    `yaml:"cloak_delay_ms"`
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		App:    App{Name: "shorturl-platform", Mode: "debug", Version: "dev"},
		Server: Server{Port: 8080, ReadTimeout: 5, WriteTimeout: 10, ShutdownTimeout: 10},
		Store: Store{
			Driver:           DriverFile,
			DataDir:          "./data",
			SQLitePath:       "./data/shorturl.db",
			ReconcileOnStart: true,
		},
		Database:  DB{Host: "localhost", Port: 3306, Charset: "utf8mb4"},
		Cache:     Cache{Port: 6379, TTLMinutes: 60},
		Auth:      Auth{Issuer: "shorturl-platform", ExpirationHours: 24, AdminUsername: "admin"},
		RateLimit: Limit{Enabled: false, Requests: 120, Burst: 20, SkipPaths: []string{"/health", "/swagger"}},
		Link:      Link{BaseURL: "http://localhost:8080", CodeLength: 6, MaxAttempts: 10, CloakDelayMS: 2000},
		Log:       Log{Level: "info", File: "./logs/app.log", MaxSize: 10, MaxBackups: 5, MaxAge: 30},
	}
}

// 加载配置
func Load(path string) (*Config, error) {
	const op = "config.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: 读取配置文件失败: %w", op, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: 解析配置文件失败: %w", op, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

// applyEnv 用环境变量覆盖敏感配置项
func applyEnv(cfg *Config) {
	if v := os.Getenv("SHORTURL_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("SHORTURL_ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("SHORTURL_DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SHORTURL_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("SHORTURL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("未知的存储驱动 %q", c.Store.Driver)
	}
	if c.Link.CodeLength < 6 || c.Link.CodeLength > 8 {
		return fmt.Errorf("短码长度必须在 6 到 8 之间, 当前为 %d", c.Link.CodeLength)
	}
	if c.Link.MaxAttempts < 1 {
		return fmt.Errorf("短码最大尝试次数必须大于 0")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret 不能为空")
	}
	return nil
}
