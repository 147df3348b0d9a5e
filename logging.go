package main

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/soar/virtualinput/internal/config"
)

// setupLogging sends log output to stderr and, when configured, to a size
// rotated file. The returned closer flushes the file.
func setupLogging(cfg *config.Config) io.Closer {
	if cfg.LogFile == "" {
		return io.NopCloser(nil)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: 3,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file
}
