// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdWinner retrieves the winning proposal.
type cmdWinner struct{}

// Execute executes the cmdWinner command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdWinner) Execute(args []string) error {
	var wr v1.WinnerReply
	err := execCmd(v1.CmdWinner, nil, &wr)
	if err != nil {
		return err
	}
	if !wr.Winner {
		printf("The ledger does not contain any proposals\n")
		return nil
	}

	printProposal(wr.Proposal)

	return nil
}

// winnerHelpMsg is printed to stdout by the help command.
const winnerHelpMsg = `winner

Get the proposal with the most votes. The proposal with the lowest index wins
a tie.`
