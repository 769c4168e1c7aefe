package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// LevelEnvVars are consulted in order by GetLogger; the first non-empty,
// parseable value wins.
var LevelEnvVars = []string{"ACOUSTICALIGN_LOG_LEVEL", "LOG_LEVEL"}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names case-insensitively; "warning" is an alias for WARN.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorGray
	case INFO:
		return colorBlue
	case WARN:
		return colorYellow
	default:
		return colorRed
	}
}

// sink is shared between a logger and the children derived from it so that
// SetLevel and SetOutput on the parent apply everywhere.
type sink struct {
	mu         sync.Mutex
	out        io.Writer
	level      LogLevel
	colorize   bool
	showCaller bool
	showTime   bool
	timeFormat string
}

type Logger struct {
	*sink
	prefix string
	exit   func(int)
}

var (
	defaultLogger *Logger
	once          sync.Once
)

type Config struct {
	Level      LogLevel
	Prefix     string
	Colorize   bool
	ShowCaller bool
	ShowTime   bool
	TimeFormat string
	Output     io.Writer
}

// DefaultConfig logs INFO and above to stderr, keeping stdout free for
// command output.
func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		Colorize:   true,
		ShowTime:   true,
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stderr,
	}
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "2006-01-02 15:04:05"
	}

	return &Logger{
		sink: &sink{
			out:        cfg.Output,
			level:      cfg.Level,
			colorize:   cfg.Colorize,
			showCaller: cfg.ShowCaller,
			showTime:   cfg.ShowTime,
			timeFormat: cfg.TimeFormat,
		},
		prefix: cfg.Prefix,
		exit:   os.Exit,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Config{Level: FATAL + 1, Output: io.Discard})
}

func levelFromEnv() (LogLevel, bool) {
	for _, name := range LevelEnvVars {
		if v := os.Getenv(name); v != "" {
			if lvl, err := ParseLevel(v); err == nil {
				return lvl, true
			}
		}
	}
	return INFO, false
}

func GetLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if lvl, ok := levelFromEnv(); ok {
			cfg.Level = lvl
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

// WithPrefix returns a child logger that tags every line with prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l.prefix != "" {
		prefix = l.prefix + " " + prefix
	}
	return &Logger{sink: l.sink, prefix: prefix, exit: l.exit}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

func (l *Logger) SetColorize(colorize bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorize = colorize
}

func (l *Logger) SetShowCaller(show bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.showCaller = show
}

func (l *Logger) formatMessage(level LogLevel, msg string, args ...any) string {
	var parts []string

	if l.showTime {
		parts = append(parts, time.Now().Format(l.timeFormat))
	}

	levelStr := "[" + level.String() + "]"
	if l.colorize {
		levelStr = level.color() + levelStr + colorReset
	}
	parts = append(parts, levelStr)

	if l.showCaller {
		if _, file, line, ok := runtime.Caller(3); ok {
			if idx := strings.LastIndex(file, "/"); idx >= 0 {
				file = file[idx+1:]
			}
			parts = append(parts, fmt.Sprintf("%s:%d", file, line))
		}
	}

	if l.prefix != "" {
		parts = append(parts, l.prefix)
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	parts = append(parts, msg)

	return strings.Join(parts, " ")
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}
	fmt.Fprintln(l.out, l.formatMessage(level, msg, args...))
	l.mu.Unlock()

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(ERROR, msg, args...) }

// Fatal logs at FATAL level and exits the program
func (l *Logger) Fatal(msg string, args ...any) { l.log(FATAL, msg, args...) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ERROR, format, args...) }
func (l *Logger) Fatalf(format string, args ...any) { l.log(FATAL, format, args...) }

// Package-level convenience functions using the default logger

func Debug(msg string, args ...any) { GetLogger().log(DEBUG, msg, args...) }
func Info(msg string, args ...any)  { GetLogger().log(INFO, msg, args...) }
func Warn(msg string, args ...any)  { GetLogger().log(WARN, msg, args...) }
func Error(msg string, args ...any) { GetLogger().log(ERROR, msg, args...) }
func Fatal(msg string, args ...any) { GetLogger().log(FATAL, msg, args...) }

func Debugf(format string, args ...any) { GetLogger().log(DEBUG, format, args...) }
func Infof(format string, args ...any)  { GetLogger().log(INFO, format, args...) }
func Warnf(format string, args ...any)  { GetLogger().log(WARN, format, args...) }
func Errorf(format string, args ...any) { GetLogger().log(ERROR, format, args...) }
func Fatalf(format string, args ...any) { GetLogger().log(FATAL, format, args...) }

// SetLevel sets the log level for the default logger
func SetLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}

// SetOutput sets the output for the default logger
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// SetColorize enables or disables colored output for the default logger
func SetColorize(colorize bool) {
	GetLogger().SetColorize(colorize)
}
