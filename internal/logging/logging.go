// ABOUTME: Global logger setup with console and rotating file sinks.
// ABOUTME: Console output goes to stderr so command output stays pipeable.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/harperreed/longevity/internal/storage"
)

// Init configures the global zerolog logger. Console output is pretty-printed
// when stderr is a terminal; a rotating file under the data directory keeps
// history for debugging. Init is called before config loads, so the optional
// .env next to the binary is read here.
func Init(verbose bool) {
	if exePath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := os.Getenv("LONGEVITY_LOGS")
	if logDir == "" {
		logDir = filepath.Join(storage.DataDir(), "logs")
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	// A broken log directory should never take the CLI down; fall back to
	// console-only logging.
	if err := os.MkdirAll(logDir, 0750); err == nil {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "longevity.log"),
			MaxSize:    16, // megabytes
			MaxBackups: 8,
			MaxAge:     90, // days
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
}
