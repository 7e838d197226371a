// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/decred/dvote/ledger"
	"github.com/decred/dvote/ledger/ledgerdb"
	"github.com/decred/dvote/store"
	"github.com/decred/dvote/store/localdb"
	"github.com/decred/dvote/store/mysql"
)

// openStore opens the store that is selected by the config.
func openStore() (store.BlobKV, error) {
	switch cfg.DB {
	case dbTypeLocalDB:
		return localdb.New(cfg.AppDir, cfg.DataDir)
	case dbTypeMySQL:
		return mysql.New(cfg.DBHost, cfg.DBUser, cfg.dbPass, cfg.DBName)
	}
	return nil, fmt.Errorf("invalid db type '%v'", cfg.DB)
}

// openLedger opens the ledger that is saved in the provided store.
func openLedger(kv store.BlobKV) (*ledger.Ledger, error) {
	return ledger.Open(ledgerdb.New(kv, cfg.Encrypt), cfg.ledgerSettings)
}

// execCmd opens the ledger, executes the ledger command as the configured
// caller, and decodes the reply into the provided reply. The raw reply is
// printed when raw JSON output is enabled.
func execCmd(cmd string, payload, reply interface{}) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	l, err := openLedger(kv)
	if err != nil {
		return err
	}

	var p []byte
	if payload != nil {
		p, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}
	r, err := l.Cmd(cfg.Caller, cmd, string(p))
	if err != nil {
		return err
	}
	if cfg.RawJSON && !cfg.Silent {
		fmt.Printf("%v\n", r)
	}

	return json.Unmarshal([]byte(r), reply)
}

// requireCaller returns an error if the caller identity has not been
// configured.
func requireCaller() error {
	if cfg.Caller == "" {
		return fmt.Errorf("the caller identity must be provided " +
			"using --caller")
	}
	return nil
}
