// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dvote/ledger/ledgerdb"
	"github.com/decred/dvote/store"
)

// cmdDump dumps the raw records of the store.
type cmdDump struct{}

// Execute executes the cmdDump command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdDump) Execute(args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	w, ok := kv.(store.Walker)
	if !ok {
		return fmt.Errorf("%v store cannot be walked", cfg.DB)
	}
	return w.Walk(func(key string, blob []byte) error {
		printf("%v\n", strings.Repeat("=", 80))
		printf("Key       : %v\n", key)
		if !ledgerdb.IsLedgerKey(key) {
			printf("Size      : %v bytes\n", len(blob))
			return nil
		}
		dd, data, err := ledgerdb.Decode(blob)
		if err != nil {
			return fmt.Errorf("decode %v: %v", key, err)
		}
		var v interface{}
		err = json.Unmarshal(data, &v)
		if err != nil {
			return fmt.Errorf("unmarshal %v: %v", key, err)
		}
		printf("Descriptor: %v\n", dd.Descriptor)
		printf("Record    : %v", spew.Sdump(v))
		return nil
	})
}

// dumpHelpMsg is printed to stdout by the help command.
const dumpHelpMsg = `dump

Dump every record of the configured store. Ledger records are decoded and their
digests are verified.`
