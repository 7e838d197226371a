// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/decred/dcrd/dcrutil/v3"
	"github.com/decred/dvote/ledger"
	"github.com/decred/dvote/util"
	"github.com/decred/slog"
	"github.com/jessevdk/go-flags"
)

const (
	// General application settings
	appName     = "dvotectl"
	dataDirname = "data"
	logDirname  = "logs"
	logLevel    = "info"

	// Database settings
	dbTypeLocalDB = "localdb"
	dbTypeMySQL   = "mysql"
	dbHost        = "localhost:3306"
	dbName        = "dvote"
	dbUser        = "dvote"

	// envDBPass is the environment variable that the MySQL password is
	// read from.
	envDBPass = "DBPASS"
)

var (
	// General application settings
	configFilename = fmt.Sprintf("%v.conf", appName)
	logFilename    = fmt.Sprintf("%v.log", appName)

	appDir     = dcrutil.AppDataDir(appName, false)
	dataDir    = filepath.Join(appDir, dataDirname)
	logDir     = filepath.Join(appDir, logDirname)
	configFile = filepath.Join(appDir, configFilename)
)

// config is the command configuration.
type config struct {
	AppDir         string   `long:"appdir" description:"Application home directory path"`
	DataDir        string   `long:"datadir" description:"Data directory path"`
	LogDir         string   `long:"logdir" description:"Log directory path"`
	ConfigFile     string   `long:"configfile" description:"Config file path"`
	LogLevel       string   `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	Caller         string   `short:"c" long:"caller" description:"Identity that ledger commands are executed as"`
	DB             string   `long:"db" description:"Database type {localdb, mysql}"`
	DBHost         string   `long:"dbhost" description:"MySQL host"`
	DBName         string   `long:"dbname" description:"MySQL database name"`
	DBUser         string   `long:"dbuser" description:"MySQL user"`
	Encrypt        bool     `long:"encrypt" description:"Encrypt the ledger records"`
	LedgerSettings []string `long:"ledgersetting" description:"Ledger setting as key,value -- May be used more than once"`
	RawJSON        bool     `short:"j" long:"json" description:"Print raw JSON output"`
	Silent         bool     `long:"silent" description:"Suppress all output"`

	dbPass         string           // Read from the DBPASS env variable
	ledgerSettings []ledger.Setting // Parsed LedgerSettings
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in the app functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options. Command line options always take precedence.
func loadConfig(args []string) (*config, error) {
	// Setup the default config
	cfg := &config{
		AppDir:     appDir,
		DataDir:    dataDir,
		LogDir:     logDir,
		ConfigFile: configFile,
		LogLevel:   logLevel,
		DB:         dbTypeLocalDB,
		DBHost:     dbHost,
		DBName:     dbName,
		DBUser:     dbUser,
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified. Printing the help message is the responsibility
	// of the caller. The config does not have any knowledge of the commands
	// or command descriptions.
	var (
		preCfg    = *cfg
		preParser = flags.NewParser(&preCfg, flags.IgnoreUnknown)
	)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	// Update the home directory if specified. Since the home directory
	// is updated, other variables need to be updated to reflect the new
	// changes.
	if preCfg.AppDir != appDir {
		cfg.AppDir = util.CleanAndExpandPath(preCfg.AppDir)

		// Update the other path config settings with the
		// newly provided application home directory.
		if preCfg.DataDir == dataDir {
			cfg.DataDir = filepath.Join(cfg.AppDir, dataDirname)
		} else {
			cfg.DataDir = preCfg.DataDir
		}
		if preCfg.LogDir == logDir {
			cfg.LogDir = filepath.Join(cfg.AppDir, logDirname)
		} else {
			cfg.LogDir = preCfg.LogDir
		}
		if preCfg.ConfigFile == configFile {
			cfg.ConfigFile = filepath.Join(cfg.AppDir, configFilename)
		} else {
			cfg.ConfigFile = preCfg.ConfigFile
		}
	} else if preCfg.ConfigFile != configFile {
		cfg.ConfigFile = preCfg.ConfigFile
	}

	// Load any additional settings from the config file
	parser := flags.NewParser(cfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	err = flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
	if err != nil {
		var e *os.PathError
		if !errors.As(err, &e) {
			return nil, fmt.Errorf("parse config file: %v", err)
		}
		// No config file was found. This is ok. A config file
		// is not required. Continue.
	}

	// Parse command line options again to ensure they take
	// precedence.
	_, err = parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	// Check for the show log level. This is used to list supported
	// subsystems and exit.
	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Parse, validate, and set the log level
	err = parseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Clean and expand all file paths
	cfg.AppDir = util.CleanAndExpandPath(cfg.AppDir)
	cfg.DataDir = util.CleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = util.CleanAndExpandPath(cfg.LogDir)
	cfg.ConfigFile = util.CleanAndExpandPath(cfg.ConfigFile)

	// Verify the database settings
	switch cfg.DB {
	case dbTypeLocalDB:
		// Nothing to do
	case dbTypeMySQL:
		cfg.dbPass = os.Getenv(envDBPass)
		if cfg.dbPass == "" {
			return nil, fmt.Errorf("the %v env variable must be set "+
				"when using %v", envDBPass, dbTypeMySQL)
		}
	default:
		return nil, fmt.Errorf("invalid db type '%v'", cfg.DB)
	}

	// Parse the ledger settings
	cfg.ledgerSettings, err = parseLedgerSettings(cfg.LedgerSettings)
	if err != nil {
		return nil, err
	}

	// Create the app and data directories if they don't exist
	err = os.MkdirAll(cfg.AppDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create app dir: %v", err)
	}
	err = os.MkdirAll(cfg.DataDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %v", err)
	}

	return cfg, nil
}

// parseLedgerSettings parses the provided key,value pairs into ledger
// settings. The settings themselves are validated by the ledger.
func parseLedgerSettings(settings []string) ([]ledger.Setting, error) {
	ss := make([]ledger.Setting, 0, len(settings))
	for _, v := range settings {
		s := strings.SplitN(v, ",", 2)
		if len(s) != 2 || s[0] == "" {
			return nil, fmt.Errorf("invalid ledger setting '%v': must "+
				"be in the format key,value", v)
		}
		ss = append(ss, ledger.Setting{
			Key:   strings.TrimSpace(s[0]),
			Value: strings.TrimSpace(s[1]),
		})
	}
	return ss, nil
}

// parseAndSetLogLevels attempts to parse the specified log level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func parseAndSetLogLevels(logLevel string) error {
	// When the specified string doesn't have any
	// delimiters, treat it as the log level for all
	// subsystems.
	if !strings.Contains(logLevel, ",") &&
		!strings.Contains(logLevel, "=") {
		// Validate log level
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified log level "+
				"[%v] is invalid", logLevel)
		}

		// Change the logging level for all subsystems
		setLogLevels(logLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while
	// detecting issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(logLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "The specified log level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "The specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level
		if !validLogLevel(logLevel) {
			str := "The specified log level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// validLogLevel returns whether the logLevel is a valid log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}
