package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/collide/constants"
)

// SetupLogging points the standard logger at the rotated log file when debug is set
// Without debug all output is discarded so the terminal stays clean
// Returns the open file for the caller to close, nil when logging is off or the file cannot be opened
func SetupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(constants.LogDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(constants.LogDir, constants.LogFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > constants.MaxLogSize {
		rotated := filepath.Join(constants.LogDir,
			fmt.Sprintf("collide_%s.log", time.Now().Format("20060102_150405")))
		// Rotation failure only means the old file keeps growing
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Printf("logging started, pid %d", os.Getpid())
	return f
}
