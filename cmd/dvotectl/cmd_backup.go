// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/decred/dvote/store/localdb"
	"github.com/decred/dvote/util"
	"github.com/otiai10/copy"
)

// cmdBackup copies the localdb database and its encryption key to a
// directory.
type cmdBackup struct {
	Args struct {
		Dir string `positional-arg-name:"dir"`
	} `positional-args:"true" required:"true"`
}

// Execute executes the cmdBackup command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdBackup) Execute(args []string) error {
	if cfg.DB != dbTypeLocalDB {
		return fmt.Errorf("backup is only supported for %v", dbTypeLocalDB)
	}
	dir := util.CleanAndExpandPath(c.Args.Dir)
	if util.FileExists(dir) {
		return fmt.Errorf("%v already exists", dir)
	}

	// Open and close the store first. This verifies that the database
	// exists and that no other process holds it open.
	kv, err := openStore()
	if err != nil {
		return err
	}
	kv.Close()

	var (
		dataSrc  = localdb.DataDir(cfg.DataDir)
		dataDest = filepath.Join(dir, filepath.Base(dataSrc))
		keySrc   = localdb.KeyFile(cfg.AppDir)
		keyDest  = filepath.Join(dir, filepath.Base(keySrc))
	)
	err = copy.Copy(dataSrc, dataDest)
	if err != nil {
		return err
	}
	err = copy.Copy(keySrc, keyDest)
	if err != nil {
		return err
	}

	log.Infof("Backup saved to %v", dir)

	return nil
}

// backupHelpMsg is printed to stdout by the help command.
const backupHelpMsg = `backup "dir"

Copy the localdb database and its encryption key to the provided directory.
The directory must not exist yet. The key is required to read encrypted
records.

Arguments:
1. dir  (string, required)  Backup directory.
`
