package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeTurn       EventType = "turn"
	EventTypeLLM        EventType = "llm"
	EventTypeDirective  EventType = "directive"
	EventTypeToolCall   EventType = "tool_call"
	EventTypeToolResult EventType = "tool_result"
	EventTypePolicy     EventType = "policy_check"
	EventTypeCascade    EventType = "cascade"
	EventTypeError      EventType = "error"
)

// Options configures where and how much is logged.
type Options struct {
	Path    string
	Level   string
	MaxSize int64
}

// Logger writes structured JSON events.
type Logger struct {
	z *zap.Logger
}

// NewLogger writes JSON lines to opts.Path. A file larger than opts.MaxSize
// is moved aside to <path>.old first.
func NewLogger(opts Options) (*Logger, error) {
	if opts.MaxSize == 0 {
		opts.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if info, err := os.Stat(opts.Path); err == nil && info.Size() > opts.MaxSize {
		rotate(opts.Path)
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{opts.Path}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{z: z}, nil
}

// NewLoggerWith wraps an existing zap logger.
func NewLoggerWith(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// NewNopLogger discards everything.
func NewNopLogger() *Logger {
	return &Logger{z: zap.NewNop()}
}

func rotate(path string) {
	oldPath := path + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(path, oldPath)
}

func (l *Logger) Zap() *zap.Logger {
	return l.z
}

func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) event(level zapcore.Level, evt EventType, chatID, turnID, msg string, fields ...zap.Field) {
	base := []zap.Field{zap.String("type", string(evt))}
	if chatID != "" {
		base = append(base, zap.String("chat_id", chatID))
	}
	if turnID != "" {
		base = append(base, zap.String("turn_id", turnID))
	}
	if ce := l.z.Check(level, msg); ce != nil {
		ce.Write(append(base, fields...)...)
	}
}

// Helper methods for common events

func (l *Logger) LogTurn(chatID, turnID, input string) {
	l.event(zapcore.InfoLevel, EventTypeTurn, chatID, turnID, "turn started", zap.String("input", input))
}

func (l *Logger) LogLLM(chatID, turnID string, prompt any, response string, elapsed time.Duration) {
	l.event(zapcore.DebugLevel, EventTypeLLM, chatID, turnID, "agent responded",
		zap.Any("prompt", prompt),
		zap.String("response", response),
		zap.Duration("elapsed", elapsed))
}

func (l *Logger) LogDirective(chatID, turnID, kind, detail string) {
	l.event(zapcore.InfoLevel, EventTypeDirective, chatID, turnID, "directive parsed",
		zap.String("kind", kind),
		zap.String("detail", detail))
}

func (l *Logger) LogToolCall(chatID, turnID, tool, input string) {
	l.event(zapcore.InfoLevel, EventTypeToolCall, chatID, turnID, "tool called",
		zap.String("tool", tool),
		zap.String("input", input))
}

func (l *Logger) LogToolResult(chatID, turnID, tool string, result any, elapsed time.Duration) {
	l.event(zapcore.InfoLevel, EventTypeToolResult, chatID, turnID, "tool completed",
		zap.String("tool", tool),
		zap.Any("result", result),
		zap.Duration("elapsed", elapsed))
}

func (l *Logger) LogPolicy(chatID, turnID, action, effect, reason string) {
	l.event(zapcore.InfoLevel, EventTypePolicy, chatID, turnID, "policy evaluated",
		zap.String("action", action),
		zap.String("effect", effect),
		zap.String("reason", reason))
}

func (l *Logger) LogCascade(chatID, turnID string, ids []int64, ok bool) {
	l.event(zapcore.InfoLevel, EventTypeCascade, chatID, turnID, "cascade delete",
		zap.Int64s("ids", ids),
		zap.Bool("ok", ok))
}

func (l *Logger) LogWarn(chatID, turnID, msg string, err error) {
	l.event(zapcore.WarnLevel, EventTypeError, chatID, turnID, msg, zap.Error(err))
}

func (l *Logger) LogError(chatID, turnID, msg string, err error) {
	l.event(zapcore.ErrorLevel, EventTypeError, chatID, turnID, msg, zap.Error(err))
}
