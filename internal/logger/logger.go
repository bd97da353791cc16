// Package logger wraps zerolog for the polyform CLI and server.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Standard field keys.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldInput     = "input"
	FieldPath      = "path"
	FieldLine      = "line"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Config contains logging configuration.
type Config struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	Output    string `toml:"output"`
	NoColor   bool   `toml:"no_color"`
	Timestamp bool   `toml:"timestamp"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !contains(validLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("log.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{FormatJSON, FormatConsole}
	if !contains(validFormats, strings.ToLower(c.Format)) {
		return fmt.Errorf("log.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	validOutputs := []string{"stdout", "stderr"}
	if !contains(validOutputs, strings.ToLower(c.Output)) {
		return fmt.Errorf("log.output must be one of %v (got: %s)", validOutputs, c.Output)
	}
	return nil
}

// Logger wraps zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

// NewWithWriter creates a logger writing to w. The caller picks w from
// Config.Output.
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	cfg.ApplyDefaults()
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if strings.ToLower(cfg.Format) == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	}
	zl := zerolog.New(w).Level(level)
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	return &Logger{logger: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger { return &Logger{logger: zerolog.Nop()} }

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str(FieldComponent, name).Logger()}
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Error(), msg, fields)
}

// Fields builds a field map from alternating key-value pairs.
//
//	log.Info("done", logger.Fields("path", p, "lines", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// --- Global logger ---

var (
	mu     sync.RWMutex
	global = Nop()
)

func SetGlobal(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

// L returns the global logger. It discards output until SetGlobal is called.
func L() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			if err, ok := v.(error); ok {
				event.AnErr(k, err)
				continue
			}
			event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
