// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// cmdSummary retrieves the ledger summary.
type cmdSummary struct{}

// Execute executes the cmdSummary command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdSummary) Execute(args []string) error {
	var sr v1.SummaryGetReply
	err := execCmd(v1.CmdSummary, nil, &sr)
	if err != nil {
		return err
	}

	printJSON(sr.Summary)

	return nil
}

// summaryHelpMsg is printed to stdout by the help command.
const summaryHelpMsg = `summary

Get the ledger summary. The total weight is the sum of all weight that has been
granted by the authority. It is always equal to the tallied weight plus the
unspent weight.`
