// Copyright (c) 2017-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
)

// cmdHelp prints a detailed help message for the specified command.
type cmdHelp struct {
	Args struct {
		Command string `positional-arg-name:"command"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdHelp command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdHelp) Execute(args []string) error {
	switch c.Args.Command {
	// Authority commands
	case "init":
		fmt.Printf("%s\n", initHelpMsg)
	case "addproposal":
		fmt.Printf("%s\n", addProposalHelpMsg)
	case "register":
		fmt.Printf("%s\n", registerHelpMsg)

	// Participant commands
	case "delegate":
		fmt.Printf("%s\n", delegateHelpMsg)
	case "vote":
		fmt.Printf("%s\n", voteHelpMsg)

	// Read commands
	case "winner":
		fmt.Printf("%s\n", winnerHelpMsg)
	case "participant":
		fmt.Printf("%s\n", participantHelpMsg)
	case "participants":
		fmt.Printf("%s\n", participantsHelpMsg)
	case "participantcount":
		fmt.Printf("%s\n", participantCountHelpMsg)
	case "proposal":
		fmt.Printf("%s\n", proposalHelpMsg)
	case "proposals":
		fmt.Printf("%s\n", proposalsHelpMsg)
	case "summary":
		fmt.Printf("%s\n", summaryHelpMsg)

	// Maintenance commands
	case "verify":
		fmt.Printf("%s\n", verifyHelpMsg)
	case "dump":
		fmt.Printf("%s\n", dumpHelpMsg)
	case "backup":
		fmt.Printf("%s\n", backupHelpMsg)

	default:
		fmt.Printf("invalid command: use 'dvotectl -h' " +
			"to view a list of valid commands\n")
	}

	return nil
}
