// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/decred/dvote/util"
)

// printf prints the provided string to stdout if the global config settings
// allows for it.
func printf(s string, args ...interface{}) {
	switch {
	case cfg.RawJSON:
		// The raw reply has already been printed
	case cfg.Silent:
		// Do nothing
	default:
		// Print to stdout
		fmt.Printf(s, args...)
	}
}

// printJSON pretty prints the provided structure if the global config settings
// allow for it.
func printJSON(v interface{}) {
	printf("%v\n", util.FormatJSON(v))
}

// printParticipant prints a participant.
func printParticipant(p v1.Participant) {
	printf("Identity  : %v\n", p.Identity)
	printf("Weight    : %v\n", p.Weight)
	printf("Registered: %v\n", p.Registered)
	switch {
	case !p.Voted:
		printf("Voted     : no\n")
	case p.Delegate != "":
		printf("Voted     : delegated to %v\n", p.Delegate)
	default:
		printf("Voted     : proposal %v\n", p.Vote)
	}
}

// printProposal prints a proposal on a single line.
func printProposal(p v1.Proposal) {
	printf("%4v  %-20v  %v\n", p.Index, p.Name, p.VoteCount)
}
