package logger

import (
	"os"
	"strings"
	"time"

	"github.com/jmallek/domainwatch/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func SetupLogger(cfg *config.LoggingConfig) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	levelStr := strings.ToLower(cfg.Level)
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	var writer zerolog.LevelWriter = zerolog.MultiLevelWriter(consoleWriter)
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSize,
			MaxBackups: 3,
		}
		writer = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Str("service", "domainwatch").
		Str("host", hostname).
		Logger()

	return logger
}
