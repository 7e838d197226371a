// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdAddProposal appends a proposal to the ledger.
type cmdAddProposal struct {
	Args struct {
		Name string `positional-arg-name:"name"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdAddProposal command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdAddProposal) Execute(args []string) error {
	err := requireCaller()
	if err != nil {
		return err
	}
	ap := v1.AddProposal{
		Name: c.Args.Name,
	}
	var apr v1.AddProposalReply
	err = execCmd(v1.CmdAddProposal, ap, &apr)
	if err != nil {
		return err
	}

	log.Infof("Proposal %v added: %v", apr.Index, c.Args.Name)

	return nil
}

// addProposalHelpMsg is printed to stdout by the help command.
const addProposalHelpMsg = `addproposal "name"

Append a proposal to the ledger. Proposal names are not required to be unique.
This command can only be executed by the authority.

Arguments:
1. name  (string, required)  Proposal name.

Example:
$ dvotectl --caller=chairperson addproposal mountain
`
