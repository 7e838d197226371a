// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdParticipant retrieves a participant.
type cmdParticipant struct {
	Args struct {
		Identity string `positional-arg-name:"identity"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdParticipant command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdParticipant) Execute(args []string) error {
	pg := v1.ParticipantGet{
		Identity: c.Args.Identity,
	}
	var pgr v1.ParticipantGetReply
	err := execCmd(v1.CmdParticipant, pg, &pgr)
	if err != nil {
		return err
	}

	printParticipant(pgr.Participant)

	return nil
}

// participantHelpMsg is printed to stdout by the help command.
const participantHelpMsg = `participant "identity"

Get a participant. Identities that the ledger does not know about are returned
with no weight.

Arguments:
1. identity  (string, required)  Participant identity.
`
