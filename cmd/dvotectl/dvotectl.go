// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/dvote/util"
	flags "github.com/jessevdk/go-flags"
)

var (
	// cfg is the global config. It is set during startup and must not be
	// modified by the commands.
	cfg *config
)

const helpMsg = `Application Options:
      --appdir=         Path to application home directory
      --datadir=        Data directory path
      --logdir=         Log directory path
      --configfile=     Config file path
  -d, --loglevel=       Logging level {trace, debug, info, warn, error, critical}
  -c, --caller=         Identity that ledger commands are executed as
      --db=             Database type {localdb, mysql}
      --dbhost=         MySQL host
      --dbname=         MySQL database name
      --dbuser=         MySQL user; the password is read from DBPASS
      --encrypt         Encrypt the ledger records
      --ledgersetting=  Ledger setting as key,value
  -j, --json            Print raw JSON output
      --silent          Suppress all output

Help commands
  help                  Print detailed help message for a command

Authority commands
  init                  Create a new ledger
  addproposal           Add a proposal
  register              Grant voting weight to a participant

Participant commands
  delegate              Delegate the caller's voting weight
  vote                  Vote for a proposal

Read commands
  winner                Get the winning proposal
  participant           Get a participant
  participants          Get all participants
  participantcount      Get the number of registered participants
  proposal              Get a proposal
  proposals             Get all proposals
  summary               Get the ledger summary

Maintenance commands
  verify                Verify the ledger invariants
  dump                  Dump the raw store records
  backup                Copy the localdb data to a directory
`

func _main() error {
	// Load config. The config variable is a global variable.
	var err error
	cfg, err = loadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %v", err)
	}
	logOutput.stdout = !cfg.Silent && !cfg.RawJSON

	err = initLogRotator(filepath.Join(cfg.LogDir, logFilename))
	if err != nil {
		return err
	}
	defer closeLogRotator()

	// Check for a help flag. This is done separately so that we can
	// print our own custom help message.
	var opts flags.Options = flags.HelpFlag | flags.IgnoreUnknown |
		flags.PassDoubleDash
	parser := flags.NewParser(&struct{}{}, opts)
	_, err = parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			// The -h, --help flag was used. Print the custom help message
			// and exit gracefully.
			fmt.Printf("%v\n", helpMsg)
			os.Exit(0)
		}
		return fmt.Errorf("parse help flag: %v", err)
	}

	// Parse CLI args and execute command
	parser = flags.NewParser(&cmds{DoNotUse: cfg},
		flags.HelpFlag|flags.PassDoubleDash)
	_, err = parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) &&
			flagsErr.Type == flags.ErrCommandRequired {
			fmt.Printf("%v\n", helpMsg)
			os.Exit(1)
		}

		// Log the stack trace of internal errors
		if st, ok := util.StackTrace(err); ok {
			log.Debugf("%v", st)
		}
		return err
	}

	return nil
}

func main() {
	err := _main()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
