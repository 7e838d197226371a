// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdDelegate delegates the caller's voting weight to another participant.
type cmdDelegate struct {
	Args struct {
		Target string `positional-arg-name:"target"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdDelegate command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdDelegate) Execute(args []string) error {
	err := requireCaller()
	if err != nil {
		return err
	}
	d := v1.Delegate{
		Target: c.Args.Target,
	}
	var dr v1.DelegateReply
	err = execCmd(v1.CmdDelegate, d, &dr)
	if err != nil {
		return err
	}

	if dr.Terminal != c.Args.Target {
		log.Infof("Weight of %v delegated to %v via %v",
			cfg.Caller, dr.Terminal, c.Args.Target)
	} else {
		log.Infof("Weight of %v delegated to %v", cfg.Caller, dr.Terminal)
	}

	return nil
}

// delegateHelpMsg is printed to stdout by the help command.
const delegateHelpMsg = `delegate "target"

Delegate all of the caller's voting weight to the target. The delegation is
resolved to the end of the target's delegation chain. If the participant at
the end of the chain has already voted, the weight is added to the proposal
that it voted for. A delegation that would create a cycle is rejected.

Arguments:
1. target  (string, required)  Identity to delegate to.

Example:
$ dvotectl --caller=bob delegate alice
`
