package zaplog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level zapcore.Level
	// LogPath is the log file. Empty sends logs to stderr.
	LogPath     string
	MaxSizeInMB int
	MaxBackups  int
	Name        string
}

const (
	maxLogFileSizeInMb = 5
	maxLogFileCount    = 8
)

var LoggerCfg = Config{
	Level:       zapcore.InfoLevel,
	MaxSizeInMB: maxLogFileSizeInMb,
	MaxBackups:  maxLogFileCount,
	Name:        "mfd-network-adapter",
}

func InitZapLog(cfg *Config) *zap.Logger {
	var writer zapcore.WriteSyncer
	if cfg.LogPath == "" {
		writer = zapcore.Lock(os.Stderr)
	} else {
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.MaxSizeInMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	core := zapcore.NewCore(jsonEncoder, writer, cfg.Level)
	return zap.New(core).Named(cfg.Name).With(zap.Int("pid", os.Getpid()))
}
