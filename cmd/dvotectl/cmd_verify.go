// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// cmdVerify verifies the ledger invariants.
type cmdVerify struct{}

// Execute executes the cmdVerify command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdVerify) Execute(args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	// The ledger is verified when it is loaded
	l, err := openLedger(kv)
	if err != nil {
		return err
	}
	err = l.Verify()
	if err != nil {
		return err
	}

	s := l.Summary()
	log.Infof("Ledger %v verified: %v proposals, %v participants, "+
		"%v total weight", s.ID, s.Proposals, s.Participants, s.TotalWeight)

	return nil
}

// verifyHelpMsg is printed to stdout by the help command.
const verifyHelpMsg = `verify

Load the ledger from the store and verify the ledger invariants. The granted
weight must equal the unspent weight plus the tallied weight. Every participant
that voted must hold no weight and must have either voted for an existing
proposal or delegated to a known participant.`
