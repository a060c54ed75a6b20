package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tag is the name every diagnostic line is prefixed with.
const Tag = "webdarkmode"

// Config selects how much the tool says about individual images.
// It is decided once at startup and injected; nothing reads it afterwards.
type Config struct {
	// Debug enables the diagnostic channel: per-image decisions at info
	// level plus environment details at debug level. Off means the tool is
	// silent except for hard failures.
	Debug bool
}

// New builds the structured logger used throughout the pipeline.
func New(cfg Config) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.EncoderConfig.TimeKey = ""
	zcfg.DisableStacktrace = true
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named(Tag)
}
