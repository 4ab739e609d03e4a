package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig selects how much pool activity is logged.
type LoggingConfig struct {
	Level string `yaml:"level"` // none, debug, normal
}

// Prepare returns our standard logger - configured zap console logger for use
// by the hosting program.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	var level zapcore.Level
	switch conf.Level {
	case "", "none":
		return zap.NewNop(), nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unexpected console logger level: %s", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core), nil
}
