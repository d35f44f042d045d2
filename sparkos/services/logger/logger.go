// Package logger builds the zap logger every component logs through. Entries
// are encoded by zap and handed line by line to the HAL log sink.
package logger

import (
	"bytes"
	"fmt"
	"strings"

	"sparkcalc/hal"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and encoding.
type Config struct {
	// Level is a zap level name ("debug", "info", ...). Empty means info.
	Level string
	// JSON switches from the console encoder to JSON lines.
	JSON bool
	// Session tags every entry. A random id is used when empty.
	Session string
}

// halSink feeds encoded entries to a hal.Logger.
type halSink struct {
	log hal.Logger
}

func (s halSink) Write(p []byte) (int, error) {
	s.log.WriteLineBytes(bytes.TrimRight(p, "\n"))
	return len(p), nil
}

func (s halSink) Sync() error { return nil }

// ParseLevel accepts zap level names, case-insensitively. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// New returns a logger writing to sink plus the atomic level controlling it,
// so the level can follow settings changes at runtime.
func New(sink hal.Logger, cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	level := zap.NewAtomicLevelAt(lvl)

	if sink == nil {
		return zap.NewNop(), level, nil
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	session := cfg.Session
	if session == "" {
		session = uuid.NewString()
	}

	core := zapcore.NewCore(enc, halSink{log: sink}, level)
	return zap.New(core).With(zap.String("session", session)), level, nil
}
