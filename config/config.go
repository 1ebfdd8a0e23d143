// Package config 负责加载应用配置
// 配置来源依次为: 默认值、配置文件(config.yaml)、EASTERBLOG_ 前缀的环境变量
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/weiwangfds/easterblog/internal/logger"
)

// EnvPrefix 环境变量前缀，例如 EASTERBLOG_SERVER_PORT
const EnvPrefix = "EASTERBLOG"

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      logger.Config  `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	HTTPSPort    int      `mapstructure:"https_port"`
	EnableHTTPS  bool     `mapstructure:"enable_https"`
	EnableHTTP2  bool     `mapstructure:"enable_http2"`
	TLSCertFile  string   `mapstructure:"tls_cert_file"`
	TLSKeyFile   string   `mapstructure:"tls_key_file"`
	ReadTimeout  int      `mapstructure:"read_timeout"`  // 秒
	WriteTimeout int      `mapstructure:"write_timeout"` // 秒
	StaticDir    string   `mapstructure:"static_dir"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	Mode         string   `mapstructure:"mode"` // gin 模式: debug, release, test
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // sqlite, postgres
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // silent, error, warn, info
	SeedCategories  bool   `mapstructure:"seed_categories"`
}

// UploadConfig 上传配置
type UploadConfig struct {
	MaxSize      int64  `mapstructure:"max_size"` // 字节
	RootDir      string `mapstructure:"root_dir"`
	PublicPrefix string `mapstructure:"public_prefix"`
}

// StorageConfig 媒体存储配置
// Backend 决定新上传文件写入的位置，删除时以记录上保存的后端为准
type StorageConfig struct {
	Backend string       `mapstructure:"backend"` // local, remote
	Remote  RemoteConfig `mapstructure:"remote"`
}

// RemoteConfig 远程对象存储配置
type RemoteConfig struct {
	Provider      string `mapstructure:"provider"` // aliyun, tencent, qiniu, s3
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	Prefix        string `mapstructure:"prefix"`
}

// AuthConfig 管理员鉴权配置
type AuthConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	PasskeyHash string        `mapstructure:"passkey_hash"` // bcrypt 哈希，可用 cmd/passhash 生成
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// TracingConfig 链路追踪配置，Endpoint 为空时不启用
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// Load 加载配置
// 配置文件路径可通过 EASTERBLOG_CONFIG 指定，未指定时在当前目录和 ./config 下查找 config.yaml
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// decode 解析并校验配置
func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验枚举类配置项
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Storage.Backend {
	case "local":
	case "remote":
		switch c.Storage.Remote.Provider {
		case "aliyun", "tencent", "qiniu", "s3":
		default:
			return fmt.Errorf("unsupported remote storage provider: %q", c.Storage.Remote.Provider)
		}
		if c.Storage.Remote.Bucket == "" {
			return fmt.Errorf("storage.remote.bucket is required for remote backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend: %q", c.Storage.Backend)
	}

	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload.max_size must be positive")
	}

	if c.Auth.Enabled {
		if c.Auth.PasskeyHash == "" || c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.passkey_hash and auth.jwt_secret are required when auth is enabled")
		}
	}
	return nil
}

// setDefaults 为所有配置项设置默认值
// 未设置默认值的键不会被 AutomaticEnv 覆盖，因此空字符串也需要显式声明
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.https_port", 3443)
	v.SetDefault("server.enable_https", false)
	v.SetDefault("server.enable_http2", true)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.tls_cert_file", "")
	v.SetDefault("server.tls_key_file", "")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "easter_blog.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 3600)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.seed_categories", true)

	v.SetDefault("upload.max_size", 100*1024*1024)
	v.SetDefault("upload.root_dir", "uploads")
	v.SetDefault("upload.public_prefix", "/uploads")

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.remote.provider", "")
	v.SetDefault("storage.remote.region", "")
	v.SetDefault("storage.remote.bucket", "")
	v.SetDefault("storage.remote.endpoint", "")
	v.SetDefault("storage.remote.access_key", "")
	v.SetDefault("storage.remote.secret_key", "")
	v.SetDefault("storage.remote.public_base_url", "")
	v.SetDefault("storage.remote.use_ssl", true)
	v.SetDefault("storage.remote.prefix", "easter-blog")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.passkey_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "easter-blog")
	v.SetDefault("tracing.insecure", true)
}
