// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdProposal retrieves a proposal.
type cmdProposal struct {
	Args struct {
		Index uint32 `positional-arg-name:"index"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdProposal command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdProposal) Execute(args []string) error {
	pg := v1.ProposalGet{
		Index: c.Args.Index,
	}
	var pgr v1.ProposalGetReply
	err := execCmd(v1.CmdProposal, pg, &pgr)
	if err != nil {
		return err
	}

	printProposal(pgr.Proposal)

	return nil
}

// cmdProposals retrieves all proposals.
type cmdProposals struct{}

// Execute executes the cmdProposals command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdProposals) Execute(args []string) error {
	var pr v1.ProposalsReply
	err := execCmd(v1.CmdProposals, nil, &pr)
	if err != nil {
		return err
	}
	for _, v := range pr.Proposals {
		printProposal(v)
	}
	return nil
}

// proposalHelpMsg is printed to stdout by the help command.
const proposalHelpMsg = `proposal index

Get the proposal at the provided index.

Arguments:
1. index  (uint32, required)  Proposal index.
`

// proposalsHelpMsg is printed to stdout by the help command.
const proposalsHelpMsg = `proposals

Get all proposals ordered by index.`
