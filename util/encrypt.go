// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"os"

	"github.com/decred/slog"
	"github.com/marcopeereboom/sbox"
	"github.com/pkg/errors"
)

// Zero zeros out a byte slice.
func Zero(in []byte) {
	if in == nil {
		return
	}
	inlen := len(in)
	for i := 0; i < inlen; i++ {
		in[i] ^= in[i]
	}
}

// LoadEncryptionKey loads the secretbox key at the provided file path. A new
// key is created and saved to the file path first if one does not exist yet.
func LoadEncryptionKey(log slog.Logger, keyFile string) (*[32]byte, error) {
	if keyFile == "" {
		return nil, errors.Errorf("no key file provided")
	}

	if !FileExists(keyFile) {
		log.Infof("Generating encryption key")
		key, err := sbox.NewKey()
		if err != nil {
			return nil, err
		}
		err = os.WriteFile(keyFile, key[:], 0400)
		Zero(key[:])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		log.Infof("Encryption key created: %v", keyFile)
	}

	f, err := os.Open(keyFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var key [32]byte
	_, err = io.ReadFull(f, key[:])
	if err != nil {
		return nil, errors.Errorf("invalid encryption key %v: %v",
			keyFile, err)
	}

	log.Debugf("Encryption key: %v", keyFile)

	return &key, nil
}
