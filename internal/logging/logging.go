// ABOUTME: Leveled logging for the awake tray utility.
// ABOUTME: Writes to stderr and, once initialized, to a per-user log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	logger  = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	logFile *os.File
	debug   = os.Getenv("AWAKE_DEBUG") == "1"
)

// Init attaches a file sink at ~/.local/state/awake/awake.log (respecting
// XDG_STATE_HOME). Failure to open the file is non-fatal: logging continues
// on stderr only.
func Init() error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = f
	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// Close detaches and closes the file sink.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	logger.SetOutput(os.Stderr)
	logFile.Close()
	logFile = nil
}

func logPath() (string, error) {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, "awake", "awake.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "awake", "awake.log"), nil
}

// Debug logs only when AWAKE_DEBUG=1 is set in the environment.
func Debug(format string, args ...interface{}) {
	if !debug {
		return
	}
	output("[DEBUG] "+format, args...)
}

func Info(format string, args ...interface{}) {
	output("[INFO] "+format, args...)
}

func Warn(format string, args ...interface{}) {
	output("[WARN] "+format, args...)
}

func Error(format string, args ...interface{}) {
	output("[ERROR] "+format, args...)
}

func output(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	logger.Printf(format, args...)
}
