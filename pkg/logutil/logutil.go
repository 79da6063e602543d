// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out = io.Discard
	// If out is set by SetOutputFile, outFile is set and keeps the same value
	// as out. Otherwise, outFile is nil.
	outFile *os.File
	loggers []*log.Logger
	// Protects the variables above.
	mutex sync.Mutex
)

// GetLogger gets a logger with a prefix. The output of all loggers obtained
// this way can be redirected with SetOutput and SetOutputFile; it is
// discarded until then.
func GetLogger(prefix string) *log.Logger {
	mutex.Lock()
	defer mutex.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newOut io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
	setOutput(newOut)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file, which is created or appended to. If the old output was a
// file opened by SetOutputFile, it is closed. An empty name discards the
// output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	if outFile != nil {
		outFile.Close()
	}
	outFile = file
	setOutput(file)
	return nil
}

func setOutput(newOut io.Writer) {
	out = newOut
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
