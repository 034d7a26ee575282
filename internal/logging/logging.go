// Package logging provides component-tagged structured logging with
// optional file output and rotation.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config value to a Level. Unknown values log at info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn
	}
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i)
		}
	}
	return LevelInfo
}

// Field is a key=value pair appended to a log line
type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Config is the [logging] table of artpop.toml
type Config struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty keeps logs on the console only
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig logs warnings and errors to the console only
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		MaxSizeMB:  10,
		MaxBackups: 5,
	}
}

// Logger writes one line per event to the console and, optionally, a
// rotating log file.
type Logger struct {
	mu      sync.Mutex
	level   Level
	console io.Writer
	file    *rotatingFile
}

// New builds a logger on console (stderr for the CLI, keeping stdout for the
// status line) plus cfg.File when set.
func New(cfg Config, console io.Writer) (*Logger, error) {
	l := &Logger{
		level:   ParseLevel(cfg.Level),
		console: console,
	}
	if cfg.File == "" {
		return l, nil
	}

	defaults := DefaultConfig()
	maxSizeMB, maxBackups := cfg.MaxSizeMB, cfg.MaxBackups
	if maxSizeMB <= 0 {
		maxSizeMB = defaults.MaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = defaults.MaxBackups
	}

	f, err := openRotating(cfg.File, int64(maxSizeMB)<<20, maxBackups)
	if err != nil {
		return nil, err
	}
	l.file = f
	return l, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{level: LevelError + 1, console: io.Discard}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Debug(component, msg string, fields ...Field) {
	l.write(LevelDebug, component, msg, nil, fields)
}

func (l *Logger) Info(component, msg string, fields ...Field) {
	l.write(LevelInfo, component, msg, nil, fields)
}

func (l *Logger) Warn(component, msg string, fields ...Field) {
	l.write(LevelWarn, component, msg, nil, fields)
}

func (l *Logger) Error(component, msg string, err error, fields ...Field) {
	l.write(LevelError, component, msg, err, fields)
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) write(level Level, component, msg string, err error, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	line := formatLine(time.Now(), level, component, msg, err, fields)
	io.WriteString(l.console, line)
	if l.file != nil {
		if _, ferr := io.WriteString(l.file, line); ferr != nil {
			fmt.Fprintf(l.console, "log file %s: %v\n", l.file.path, ferr)
		}
	}
}

// formatLine renders "<RFC3339> [LEVEL] [component] msg | error=... | k=v"
func formatLine(ts time.Time, level Level, component, msg string, err error, fields []Field) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format(time.RFC3339), level, component, msg)
	if err != nil {
		fmt.Fprintf(&sb, " | error=%v", err)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " | %s=%v", f.Key, f.Value)
	}
	sb.WriteByte('\n')
	return sb.String()
}
