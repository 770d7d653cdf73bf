package bootstrap

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bnema/voyage/internal/infrastructure/config"
	"github.com/bnema/voyage/internal/logging"
)

const (
	logFileName   = "voyage.log"
	logMaxBackups = 5
	logMaxAgeDays = 14
)

// NewLogger builds the process logger from the [logging] section.
// With toStderr false and file logging off, logs are discarded; the TUI owns the terminal.
func NewLogger(cfg config.LoggingConfig, toStderr bool) (zerolog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if toStderr {
		writers = append(writers, os.Stderr)
	}
	if cfg.EnableFileLog {
		dir := cfg.LogDir
		if dir == "" {
			var err error
			if dir, err = config.GetLogDir(); err != nil {
				return zerolog.Nop(), cleanup, err
			}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), cleanup, err
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(dir, logFileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, file)
		cleanup = func() { _ = file.Close() }
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Level)
	logCfg.Format = cfg.Format
	switch len(writers) {
	case 0:
		logCfg.Output = io.Discard
	case 1:
		logCfg.Output = writers[0]
	default:
		logCfg.Output = zerolog.MultiLevelWriter(writers...)
	}
	return logging.New(logCfg), cleanup, nil
}
