// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/decred/dvote/ledger"
	"github.com/decred/dvote/ledger/ledgerdb"
)

// cmdInit creates a new ledger in the configured store.
type cmdInit struct {
	Args struct {
		Authority string `positional-arg-name:"authority"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdInit command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdInit) Execute(args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	l, err := ledger.New(c.Args.Authority,
		ledgerdb.New(kv, cfg.Encrypt), cfg.ledgerSettings)
	if err != nil {
		return err
	}

	log.Infof("Ledger %v created", l.ID())

	printJSON(l.Summary())

	return nil
}

// initHelpMsg is printed to stdout by the help command.
const initHelpMsg = `init "authority"

Create a new ledger in the configured store. The authority is the only
identity that can add proposals and grant voting weight. The ledger settings
that are provided using --ledgersetting are applied.

Arguments:
1. authority  (string, required)  Authority identity.

Example:
$ dvotectl init chairperson --ledgersetting=rejectzeroweight,true
`
