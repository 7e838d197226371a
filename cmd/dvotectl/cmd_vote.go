// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdVote casts the caller's voting weight for a proposal.
type cmdVote struct {
	Args struct {
		Index uint32 `positional-arg-name:"index"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdVote command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdVote) Execute(args []string) error {
	err := requireCaller()
	if err != nil {
		return err
	}
	v := v1.Vote{
		Index: c.Args.Index,
	}
	var vr v1.VoteReply
	err = execCmd(v1.CmdVote, v, &vr)
	if err != nil {
		return err
	}

	log.Infof("%v voted for proposal %v", cfg.Caller, c.Args.Index)

	printProposal(vr.Proposal)

	return nil
}

// voteHelpMsg is printed to stdout by the help command.
const voteHelpMsg = `vote index

Cast all of the caller's voting weight for the proposal at the provided index.
A participant can only vote or delegate once.

Arguments:
1. index  (uint32, required)  Proposal index.

Example:
$ dvotectl --caller=alice vote 1
`
