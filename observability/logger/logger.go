// Package logger builds the zap logger used by the rentcalc tool.
package logger

import (
	"fmt"
	"strings"

	"github.com/warp/rent-engine/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger at the configured level. Format "console" gives the
// human-readable development encoder; anything else is JSON.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// stdout carries the command results.
	zc.OutputPaths = []string{"stderr"}

	return zc.Build(zap.Fields(zap.String("service", "rentcalc")))
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
