// Package logging builds the structured logger shared by the commands.
//
// Everything below the CLI logs through logr.Logger; zap is the sink.
// Verbosity follows logr conventions: V(0) is info, V(1) is debug detail
// such as individual dependency merges.
package logging

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Debug enables V(1) messages and caller annotations.
	Debug bool
	// JSON switches to the production JSON encoder, used when running
	// inside GitHub Actions where logs are collected rather than read.
	JSON bool
	// Writer receives log output. Defaults to stderr.
	Writer io.Writer
}

// New returns a logr.Logger backed by zap and the underlying zap logger so
// callers can Sync it on exit.
func New(opts Options) (logr.Logger, *zap.Logger) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		// logr V(1) maps to zap level -1.
		level = zapcore.Level(-1)
	}

	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if opts.JSON {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	zl := zap.New(core)
	if opts.Debug {
		zl = zl.WithOptions(zap.AddCaller())
	}

	return zapr.NewLogger(zl), zl
}

// Discard returns a logger that drops everything.
func Discard() logr.Logger {
	return logr.Discard()
}
