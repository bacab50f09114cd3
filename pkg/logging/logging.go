package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var logFile *os.File

/*
Init configures the default charmbracelet logger: level, caller reporting
and, when logFilePath is set, a copy of every line appended to that file.
An unknown level falls back to info.
*/
func Init(level, logFilePath string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetLevel(lvl)
	log.SetReportCaller(true)
	log.SetReportTimestamp(true)

	if logFilePath == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	Close()

	logFile, err = os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	log.Debug("logging initialized", "file", logFilePath, "level", lvl)

	return nil
}

// Close closes the log file, if one was opened.
func Close() {
	if logFile == nil {
		return
	}

	log.SetOutput(os.Stderr)
	logFile.Close()
	logFile = nil
}
