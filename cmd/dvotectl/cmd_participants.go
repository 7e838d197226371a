// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdParticipants retrieves all participants.
type cmdParticipants struct{}

// Execute executes the cmdParticipants command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdParticipants) Execute(args []string) error {
	var pr v1.ParticipantsReply
	err := execCmd(v1.CmdParticipants, nil, &pr)
	if err != nil {
		return err
	}
	for i, v := range pr.Participants {
		if i > 0 {
			printf("\n")
		}
		printParticipant(v)
	}
	return nil
}

// cmdParticipantCount retrieves the number of registered participants.
type cmdParticipantCount struct{}

// Execute executes the cmdParticipantCount command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdParticipantCount) Execute(args []string) error {
	var pcr v1.ParticipantCountReply
	err := execCmd(v1.CmdParticipantCount, nil, &pcr)
	if err != nil {
		return err
	}
	printf("%v\n", pcr.Count)
	return nil
}

// participantsHelpMsg is printed to stdout by the help command.
const participantsHelpMsg = `participants

Get every participant that the ledger knows about, sorted by identity. This
includes identities that only received delegated weight.`

// participantCountHelpMsg is printed to stdout by the help command.
const participantCountHelpMsg = `participantcount

Get the number of identities that have been granted voting weight by the
authority.`
