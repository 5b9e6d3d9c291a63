// Package logger is musiclib's structured log. Every entry is one JSON object
// on its own line, written to stdout and to a size-rotated file.
//
// The server logs one HTTP_REQUEST entry per request: INFO when it
// succeeded, WARN when the client was at fault (4xx), and ERROR for a 5xx,
// with the request id and any handler errors in the details. Panics get
// their own PANIC entry. gorm's slow-query and error output arrives as DB
// entries through Printf, so a single file carries the whole story of a
// request.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const (
	EventStartup  = "SERVICE_STARTUP"
	EventShutdown = "SERVICE_SHUTDOWN"
	EventRequest  = "HTTP_REQUEST"
	EventPanic    = "PANIC"
	EventDB       = "DB"
	EventGeneral  = "GENERAL"
)

type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     Level                  `json:"level"`
	Service   string                 `json:"service"`
	EventType string                 `json:"event_type"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type Config struct {
	ServiceName string
	LogFilePath string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int

	// If set, entries go only here; nothing is written to stdout or a file.
	Output io.Writer
}

type Logger struct {
	service string
	writer  io.Writer
	mu      sync.Mutex
}

var instance *Logger

func Init(cfg Config) {
	instance = NewLogger(cfg)
}

func GetLogger() *Logger {
	if instance == nil {
		instance = &Logger{service: "musiclib", writer: os.Stdout}
	}
	return instance
}

// NewLogger builds a logger from cfg. Zero rotation limits fall back to
// 100MB per file, 5 old files, 30 days.
func NewLogger(cfg Config) *Logger {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "musiclib"
	}
	w := cfg.Output
	if w == nil {
		w = cfg.writer()
	}
	return &Logger{service: cfg.ServiceName, writer: w}
}

func (cfg Config) writer() io.Writer {
	if cfg.LogFilePath == "" {
		return os.Stdout
	}
	dir := filepath.Dir(cfg.LogFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "logger: can't create %s, logging to stdout only: %v\n", dir, err)
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		MaxAge:     orDefault(cfg.MaxAgeDays, 30),
		Compress:   true,
	})
}

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func (l *Logger) log(level Level, eventType, message string, details map[string]interface{}) {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		EventType: eventType,
		Message:   message,
		Details:   details,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: dropping %s entry %q: %v\n", eventType, message, err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(append(line, '\n'))
}

func (l *Logger) Info(eventType, message string, details map[string]interface{}) {
	l.log(LevelInfo, eventType, message, details)
}

func (l *Logger) Warn(eventType, message string, details map[string]interface{}) {
	l.log(LevelWarn, eventType, message, details)
}

func (l *Logger) Error(eventType, message string, details map[string]interface{}) {
	l.log(LevelError, eventType, message, details)
}

// Printf makes a Logger usable as gorm's logger.Writer. gorm only prints
// what passes its configured level, so everything lands as WARN.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Warn(EventDB, strings.TrimSpace(fmt.Sprintf(format, args...)), nil)
}

func Info(eventType, message string, details map[string]interface{}) {
	GetLogger().Info(eventType, message, details)
}
func Warn(eventType, message string, details map[string]interface{}) {
	GetLogger().Warn(eventType, message, details)
}
func Error(eventType, message string, details map[string]interface{}) {
	GetLogger().Error(eventType, message, details)
}

// Fields builds a details map from alternating keys and values. Non-string
// keys and a trailing key without a value are dropped.
func Fields(kv ...interface{}) map[string]interface{} {
	details := make(map[string]interface{})
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		details[key] = kv[i+1]
	}
	return details
}
