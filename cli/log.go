// Copyright (c) 2025 The xorax developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/project-illium/logger"
	"github.com/pterm/pterm"
	"github.com/xorax-labs/xorax-go/client"
	"github.com/xorax-labs/xorax-go/relayer"
	"github.com/xorax-labs/xorax-go/repo"
	"github.com/xorax-labs/xorax-go/rpc"
	"github.com/xorax-labs/xorax-go/wallet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = zap.S()

type logLevel struct {
	zap   zapcore.Level
	pterm pterm.LogLevel
}

var logLevels = map[string]logLevel{
	"debug":     {zap.DebugLevel, pterm.LogLevelDebug},
	"info":      {zap.InfoLevel, pterm.LogLevelInfo},
	"warning":   {zap.WarnLevel, pterm.LogLevelWarn},
	"error":     {zap.ErrorLevel, pterm.LogLevelError},
	"alert":     {zap.DPanicLevel, pterm.LogLevelError},
	"critical":  {zap.PanicLevel, pterm.LogLevelError},
	"emergency": {zap.FatalLevel, pterm.LogLevelFatal},
}

// bootstrapLogger reports problems found while the config file is
// loaded, before the configured logger exists.
func bootstrapLogger() *logger.Logger {
	return logger.DisabledLogger.WithCustomLogger(
		pterm.DefaultLogger.WithWriter(os.Stderr).WithLevel(pterm.LogLevelWarn))
}

// setupLogging builds the global zap logger and the repo logger.
// Terminal output goes to stderr so command output on stdout stays
// machine readable. If logDir is set every entry is also written as
// JSON, fields included, to a rotated file.
func setupLogging(logDir, level string) error {
	lvl, ok := logLevels[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("invalid log level %q", level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	consoleCfg := encCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleCfg.ConsoleSeparator = "  "

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), lvl.zap),
	}
	repoLog := logger.DisabledLogger.WithCustomLogger(
		pterm.DefaultLogger.WithWriter(os.Stderr).WithLevel(lvl.pterm))

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return err
		}
		rotator := &lumberjack.Logger{
			Filename:   path.Join(logDir, repo.DefaultLogFilename),
			MaxSize:    10, // Megabytes
			MaxBackups: 3,
			MaxAge:     30, // Days
		}
		file := zapcore.AddSync(rotator)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), file, lvl.zap))
		repoLog = repoLog.WithCustomLogger(jsonLogger(file, lvl.pterm))
	}

	zap.ReplaceGlobals(zap.New(zapcore.NewTee(cores...)))

	log = zap.S()
	repo.UseLogger(repoLog)
	rpc.UpdateLogger()
	relayer.UpdateLogger()
	client.UpdateLogger()
	wallet.UpdateLogger()
	return nil
}

func jsonLogger(w io.Writer, level pterm.LogLevel) *pterm.Logger {
	return pterm.DefaultLogger.
		WithWriter(w).
		WithFormatter(pterm.LogFormatterJSON).
		WithLevel(level)
}
