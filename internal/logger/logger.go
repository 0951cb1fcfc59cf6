// Package logger is the process-wide structured logger. Messages go to a
// rotating file under the config directory and, when debugging, to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitual/internal/constants"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 30
)

// Logger is nil until Init or InitWriter runs; the helpers below are no-ops
// until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// LogFile returns the path of the rotating log file under configDir.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init logs warnings and above to the log file. Debug lowers the level,
// adds caller info and mirrors output to stderr.
func Init(cfg Config) error {
	path := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, out)
	}

	install(out, levelFor(cfg.Debug, log.WarnLevel), cfg.Debug)
	return nil
}

// InitWriter logs info and above to w.
func InitWriter(w io.Writer, debug bool) {
	install(w, levelFor(debug, log.InfoLevel), false)
}

func levelFor(debug bool, quiet log.Level) log.Level {
	if debug {
		return log.DebugLevel
	}
	return quiet
}

func install(w io.Writer, level log.Level, caller bool) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    caller,
		CallerOffset:    2, // skip logAt and the level helper
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { logAt(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { logAt(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }
