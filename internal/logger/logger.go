// Package logger provides file logging that stays out of the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	instance *Logger
)

// Logger writes leveled lines to a file.
type Logger struct {
	fileLogger *log.Logger
	logFile    *os.File
}

// Init opens path for appending and makes it the global log destination.
// Until Init is called every log function is a no-op.
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil && instance.logFile != nil {
		instance.logFile.Close()
	}
	instance = &Logger{
		fileLogger: log.New(f, "", log.LstdFlags|log.Lshortfile),
		logFile:    f,
	}
	return nil
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	write("INFO", format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	write("ERROR", format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	write("DEBUG", format, args...)
}

func write(level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return
	}
	// calldepth 3 points Lshortfile at the caller of Info/Debug/Error.
	instance.fileLogger.Output(3, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...)))
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return nil
	}
	var err error
	if instance.logFile != nil {
		err = instance.logFile.Close()
	}
	instance = nil
	return err
}

// SetOutput redirects logging to w (useful for testing).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = &Logger{}
	}
	instance.fileLogger = log.New(w, "", 0)
}
