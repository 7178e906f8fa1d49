package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger простой уровневый логгер поверх стандартного log.
// Пишет одновременно в stdout и в файл (если файл указан в конфигурации).
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. filePath может быть пустым - тогда вывод только в stdout.
// level: "debug" | "info" | "warn" | "error" (по умолчанию info).
func New(filePath, level string) (*Logger, error) {
	l := &Logger{level: parseLevel(level)}

	var w io.Writer = os.Stdout
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", filePath, err)
		}
		l.file = f
		w = io.MultiWriter(os.Stdout, f)
	}

	l.out = log.New(w, "", log.LstdFlags)
	return l, nil
}

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// Debug логирует отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= LevelDebug {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= LevelInfo {
		l.out.Printf("[INFO] "+format, v...)
	}
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= LevelWarn {
		l.out.Printf("[WARN] "+format, v...)
	}
}

// Error логирует ошибку
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= LevelError {
		l.out.Printf("[ERROR] "+format, v...)
	}
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.out.Printf("[FATAL] "+format, v...)
	l.Close()
	os.Exit(1)
}
