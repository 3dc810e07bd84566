package common

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// LogLevel 日志级别
type LogLevel string

// 日志级别
const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// 运行环境
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

func (p LogLevel) zapLevel() (zapcore.Level, bool) {
	switch LogLevel(strings.ToLower(string(p))) {
	case Debug:
		return zapcore.DebugLevel, true
	case Info:
		return zapcore.InfoLevel, true
	case Warn:
		return zapcore.WarnLevel, true
	case Error:
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

// Logger 日志接口
type Logger interface {
	Debugf(format string, params ...interface{})
	Infof(format string, params ...interface{})
	Warnf(format string, params ...interface{})
	Errorf(format string, params ...interface{})

	DebugEnabled() bool
	InfoEnabled() bool
	WarnEnabled() bool
	ErrorEnabled() bool

	SetLevel(level LogLevel)
	Sync()
}

var (
	loggerMu sync.RWMutex
	logger   Logger = NewZapLogger(&LogConfig{Env: EnvDevelopment, Level: string(Info)})
)

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replace the global logger
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	old := logger
	logger = l
	loggerMu.Unlock()
	old.Sync()
}

func initLogger(conf *LogConfig) error {
	if conf == nil {
		return nil
	}
	if conf.Level != "" {
		if _, ok := LogLevel(conf.Level).zapLevel(); !ok {
			return fmt.Errorf("invalid log level:%s", conf.Level)
		}
	}
	SetLogger(NewZapLogger(conf))
	return nil
}

// SetLogLevel 设置日志级别,无效的级别会被忽略
func SetLogLevel(level LogLevel) {
	currentLogger().SetLevel(level)
}

// Debugf debug
func Debugf(format string, params ...interface{}) {
	currentLogger().Debugf(format, params...)
}

// Infof info
func Infof(format string, params ...interface{}) {
	currentLogger().Infof(format, params...)
}

// Warnf warn
func Warnf(format string, params ...interface{}) {
	currentLogger().Warnf(format, params...)
}

// Errorf error
func Errorf(format string, params ...interface{}) {
	currentLogger().Errorf(format, params...)
}

// Logf log with the level
func Logf(level LogLevel, format string, params ...interface{}) {
	l := currentLogger()
	switch level {
	case Debug:
		l.Debugf(format, params...)
	case Warn:
		l.Warnf(format, params...)
	case Error:
		l.Errorf(format, params...)
	default:
		l.Infof(format, params...)
	}
}

// DebugEnabled debug level enabled
func DebugEnabled() bool {
	return currentLogger().DebugEnabled()
}

// InfoEnabled info level enabled
func InfoEnabled() bool {
	return currentLogger().InfoEnabled()
}

// WarnEnabled warn level enabled
func WarnEnabled() bool {
	return currentLogger().WarnEnabled()
}

// ErrorEnabled error level enabled
func ErrorEnabled() bool {
	return currentLogger().ErrorEnabled()
}

// SyncLog flush the buffered log entries
func SyncLog() {
	currentLogger().Sync()
}
