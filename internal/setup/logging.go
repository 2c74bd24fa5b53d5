package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bugboard/bugboard/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GetLoggers creates the main and database loggers. Each run gets its
// own timestamped session directory under logDir; old sessions beyond
// MaxLogsToKeep are removed.
func GetLoggers(logDir string, cfg *config.Debug) (*zap.Logger, *zap.Logger, error) {
	sessionDir := filepath.Join(logDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(sessionDir, os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := rotateLogSessions(logDir, cfg.MaxLogsToKeep); err != nil {
		return nil, nil, err
	}

	logger, err := initLogger(filepath.Join(sessionDir, "main.log"), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	dbLogger, err := initLogger(filepath.Join(sessionDir, "database.log"), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	return logger, dbLogger, nil
}

// initLogger creates a zap logger that writes to both the given file
// and stderr.
func initLogger(path, level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(file), zapLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapLevel),
	)

	return zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Development(),
	), nil
}

// rotateLogSessions deletes the oldest session directories once the
// count exceeds maxToKeep. A maxToKeep of zero keeps everything.
func rotateLogSessions(logDir string, maxToKeep int) error {
	if maxToKeep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	var sessions []string

	for _, entry := range entries {
		if entry.IsDir() {
			sessions = append(sessions, entry.Name())
		}
	}

	if len(sessions) <= maxToKeep {
		return nil
	}

	// Session directory names sort chronologically
	sort.Strings(sessions)

	for _, name := range sessions[:len(sessions)-maxToKeep] {
		if err := os.RemoveAll(filepath.Join(logDir, name)); err != nil {
			return fmt.Errorf("failed to remove old log session %s: %w", name, err)
		}
	}

	return nil
}
