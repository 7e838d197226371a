// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"path/filepath"
	"testing"

	"github.com/decred/slog"
)

func TestZero(t *testing.T) {
	b := []byte{0x01, 0x02, 0xff}
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %v not zeroed: %x", i, v)
		}
	}

	// Nil slices are ignored
	Zero(nil)
}

func TestLoadEncryptionKey(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "sbox.key")

	// No key file provided
	_, err := LoadEncryptionKey(slog.Disabled, "")
	if err == nil {
		t.Fatalf("got nil error, want error")
	}

	// First load creates the key
	key1, err := LoadEncryptionKey(slog.Disabled, keyFile)
	if err != nil {
		t.Fatal(err)
	}
	if !FileExists(keyFile) {
		t.Fatalf("key file was not created")
	}

	// Second load reads the same key back
	key2, err := LoadEncryptionKey(slog.Disabled, keyFile)
	if err != nil {
		t.Fatal(err)
	}
	if *key1 != *key2 {
		t.Errorf("loaded key does not match the created key")
	}
}
