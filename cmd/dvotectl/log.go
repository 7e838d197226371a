// Copyright (c) 2017-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/decred/dvote/ledger"
	"github.com/decred/dvote/ledger/ledgerdb"
	"github.com/decred/dvote/store/localdb"
	"github.com/decred/dvote/store/mysql"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// logWriter implements an io.Writer that outputs to the write-end pipe of an
// initialized log rotator and can optionally write to stdout as well.
type logWriter struct {
	stdout bool // Write to the log file and stdout
}

var (
	// logPrefix is a regular expression that matches the timestamp and log
	// info that is prefixed onto log lines.
	//
	// Log line    : "2022-07-22 11:23:19.766 [INF] DVCT: Hello, world!"
	// Regexp match: "2022-07-22 11:23:19.766 [INF] DVCT: "
	logPrefix = regexp.MustCompile(`^[^\[]+[^:]+: `)
)

func (l logWriter) Write(p []byte) (n int, err error) {
	if l.stdout {
		// Trim the prefix from the log line
		// before printing it to stdout.
		idx := logPrefix.FindIndex(p)
		if idx != nil {
			os.Stdout.Write(p[idx[1]:])
		} else {
			os.Stdout.Write(p)
		}
	}
	if logRotator == nil {
		// Log rotater not initialized
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem.  A single backend logger is created and all subsytem
// loggers created from it will write to the backend.
//
// Loggers can not be used before the log rotator has been initialized with a
// log file. This must be performed early during application startup by
// calling the initLogRotator method.
var (
	// logOutput is the writer of the logging backend. Printing log lines
	// to stdout is turned off for silent and raw JSON output.
	logOutput = &logWriter{stdout: true}

	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = slog.NewBackend(logOutput)

	// logRotator is one of the logging outputs. It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	log         = backendLog.Logger("DVCT")
	ledgerLog   = backendLog.Logger("LDGR")
	ledgerdbLog = backendLog.Logger("LDDB")
	storeLog    = backendLog.Logger("STOR")
)

// Initialize package-global logger variables.
func init() {
	ledger.UseLogger(ledgerLog)
	ledgerdb.UseLogger(ledgerdbLog)
	localdb.UseLogger(storeLog)
	mysql.UseLogger(storeLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]slog.Logger{
	"DVCT": log,
	"LDGR": ledgerLog,
	"LDDB": ledgerdbLog,
	"STOR": storeLog,
}

// initLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory. It must be called before the
// package-global log rotater variables are used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return errors.Errorf("failed to create log dir %v: %v",
			logDir, err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return errors.Errorf("failed to create log file rotator: %v", err)
	}

	logRotator = r

	return nil
}

// closeLogRotator closes the log rotator.
func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	// Convert the subsystemLoggers map keys to a slice
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsytems for stable display
	sort.Strings(subsystems)
	return subsystems
}

// setLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. The log level defaults to info if an invalid log
// level is provided.
func setLogLevel(subsystemID string, logLevel string) {
	// Ignore invalid subsystems
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid
	level, _ := slog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level. The log level defaults to info if an invalid log level is provided.
func setLogLevels(logLevel string) {
	// Configure all sub-systems with the new logging level
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
