// Package logger 提供基于 logrus 的全局日志
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger 全局日志实例
var Logger *logrus.Logger

// Config 日志配置结构体
type Config struct {
	// Level 日志级别 (debug, info, warn, error)
	Level string `mapstructure:"level" json:"level"`
	// Format 日志格式 (json, text)
	Format string `mapstructure:"format" json:"format"`
	// Output 输出方式 (console, file, both)
	Output string `mapstructure:"output" json:"output"`
	// FilePath 日志文件路径，Output 为 file 或 both 时生效
	FilePath string `mapstructure:"file_path" json:"file_path"`
}

// DefaultConfig 返回默认日志配置
func DefaultConfig() *Config {
	return &Config{
		Level:    "info",
		Format:   "text",
		Output:   "console",
		FilePath: "logs/app.log",
	}
}

// Init 初始化日志系统
// config 为 nil 时使用默认配置
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
		l.Warnf("无效的日志级别 '%s'，使用默认级别 'info'", config.Level)
	}
	l.SetLevel(level)

	switch config.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		if config.Format != "text" && config.Format != "" {
			l.Warnf("无效的日志格式 '%s'，使用默认格式 'text'", config.Format)
		}
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	out, err := openOutput(config)
	if err != nil {
		return err
	}
	l.SetOutput(out)

	Logger = l
	redirectGin()

	Logger.Debug("日志系统初始化完成")
	return nil
}

// openOutput 根据配置打开日志输出
func openOutput(config *Config) (io.Writer, error) {
	switch config.Output {
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		if config.Output == "file" {
			return f, nil
		}
		return io.MultiWriter(os.Stdout, f), nil
	default:
		return os.Stdout, nil
	}
}

// redirectGin 将 gin 的默认输出接入 logrus
func redirectGin() {
	w := &ginWriter{logger: Logger}
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
}

type ginWriter struct {
	logger *logrus.Logger
}

func (w *ginWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}

// GetLogger 获取日志实例，未初始化时按默认配置初始化
func GetLogger() *logrus.Logger {
	if Logger == nil {
		if err := Init(nil); err != nil {
			logrus.Error("日志初始化失败，使用默认日志")
			return logrus.StandardLogger()
		}
	}
	return Logger
}

// SetOutput 替换日志输出，测试中用于捕获日志
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// Debugf 记录格式化调试级别日志
func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

// Info 记录信息级别日志
func Info(args ...interface{}) {
	GetLogger().Info(args...)
}

// Infof 记录格式化信息级别日志
func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

// Warnf 记录格式化警告级别日志
func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

// Errorf 记录格式化错误级别日志
func Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}

// Fatalf 记录格式化致命级别日志并退出程序
func Fatalf(format string, args ...interface{}) {
	GetLogger().Fatalf(format, args...)
}

// WithField 添加字段到日志条目
func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields 添加多个字段到日志条目
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}
