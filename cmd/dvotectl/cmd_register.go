// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdRegister grants voting weight to a participant.
type cmdRegister struct {
	Args struct {
		Identity string `positional-arg-name:"identity"`
		Weight   uint64 `positional-arg-name:"weight"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdRegister command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdRegister) Execute(args []string) error {
	err := requireCaller()
	if err != nil {
		return err
	}
	r := v1.Register{
		Identity: c.Args.Identity,
		Weight:   c.Args.Weight,
	}
	var rr v1.RegisterReply
	err = execCmd(v1.CmdRegister, r, &rr)
	if err != nil {
		return err
	}

	log.Infof("Participant %v granted %v weight", c.Args.Identity,
		c.Args.Weight)

	printParticipant(rr.Participant)

	return nil
}

// registerHelpMsg is printed to stdout by the help command.
const registerHelpMsg = `register "identity" weight

Grant voting weight to a participant. Repeated grants to the same identity
accumulate. A participant that has already voted cannot be granted more
weight. This command can only be executed by the authority.

Arguments:
1. identity  (string, required)  Participant identity.
2. weight    (uint64, required)  Voting weight to grant.

Example:
$ dvotectl --caller=chairperson register alice 5
`
