package common

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = (*ZapLogger)(nil)

// ZapLogger 使用zap封装的logger
type ZapLogger struct {
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
}

// Debugf debug
func (l *ZapLogger) Debugf(format string, params ...interface{}) {
	l.logger.Debugf(format, params...)
}

// Infof info
func (l *ZapLogger) Infof(format string, params ...interface{}) {
	l.logger.Infof(format, params...)
}

// Warnf warn
func (l *ZapLogger) Warnf(format string, params ...interface{}) {
	l.logger.Warnf(format, params...)
}

// Errorf error
func (l *ZapLogger) Errorf(format string, params ...interface{}) {
	l.logger.Errorf(format, params...)
}

// DebugEnabled implements Logger.DebugEnabled
func (l *ZapLogger) DebugEnabled() bool {
	return l.level.Enabled(zap.DebugLevel)
}

// InfoEnabled implements Logger.InfoEnabled
func (l *ZapLogger) InfoEnabled() bool {
	return l.level.Enabled(zap.InfoLevel)
}

// WarnEnabled implements Logger.WarnEnabled
func (l *ZapLogger) WarnEnabled() bool {
	return l.level.Enabled(zap.WarnLevel)
}

// ErrorEnabled implements Logger.ErrorEnabled
func (l *ZapLogger) ErrorEnabled() bool {
	return l.level.Enabled(zap.ErrorLevel)
}

// Sync implements Logger.Sync
func (l *ZapLogger) Sync() {
	_ = l.logger.Sync()
}

// SetLevel set the log level
func (l *ZapLogger) SetLevel(level LogLevel) {
	if zapl, ok := level.zapLevel(); ok {
		l.level.SetLevel(zapl)
	}
}

// NewZapLogger 根据日志配置创建zap logger,没有指定文件时输出到stderr
func NewZapLogger(logConfig *LogConfig) *ZapLogger {
	var (
		encoderConfig zapcore.EncoderConfig
		level         zap.AtomicLevel
		writer        zapcore.WriteSyncer
	)

	if logConfig.Env == EnvProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if zapl, ok := LogLevel(logConfig.Level).zapLevel(); ok && logConfig.Level != "" {
		level.SetLevel(zapl)
	}

	if logConfig.FileName != "" {
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logConfig.FileName,
			MaxSize:    logConfig.MaxSize,
			MaxBackups: logConfig.MaxBackups,
			MaxAge:     logConfig.MaxAge,
			LocalTime:  true,
		})
	} else {
		writer = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), writer, level)
	logger := zap.New(core)
	if !logConfig.NoCaller {
		logger = logger.WithOptions(zap.AddCaller(), zap.AddCallerSkip(2))
	}
	return &ZapLogger{logger: logger.Sugar(), level: level}
}
