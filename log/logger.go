package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// File sinks are written without color codes.
var fileFormat = logging.MustStringFormatter(
	`[%{time:2006-01-02 15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var (
	// The internal leveled logger backend
	leveledBackend logging.LeveledBackend

	// The active level; re-applied whenever the sink changes.
	activeLevel = Notice

	// The currently open log file, if any.
	fileSink *lumberjack.Logger
)

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Rotation settings for file sinks.
type Rotation struct {
	// Max size in megabytes before a log file gets rotated.
	MaxSizeMB int

	// Max number of rotated files to retain. Zero retains all of them.
	MaxBackups int

	// Max number of days to retain rotated files. Zero disables age-based
	// removal.
	MaxAgeDays int

	Compress bool
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. Any previously configured file sink is
// closed.
func SetSink(sink io.Writer) {
	closeFileSink()
	setBackends(logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format))
}

// Send log output to both stdout and a size-rotated log file.
func SetFileSink(filename string, rotation Rotation) {
	closeFileSink()
	fileSink = &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}

	setBackends(
		logging.NewBackendFormatter(logging.NewLogBackend(os.Stdout, "", 0), format),
		logging.NewBackendFormatter(logging.NewLogBackend(fileSink, "", 0), fileFormat),
	)
}

func setBackends(backends ...logging.Backend) {
	leveledBackend = logging.MultiLogger(backends...)
	logging.SetBackend(leveledBackend)
	SetLevel(activeLevel)
}

func closeFileSink() {
	if fileSink != nil {
		fileSink.Close()
		fileSink = nil
	}
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	}

	activeLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

// Parse a level name as used in config files.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

func init() {
	SetSink(os.Stdout)
}
