// Copyright (c) 2021-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"bytes"

	"github.com/pkg/errors"
)

// TestBlobKV runs through a series of BlobKV operations to verify that basic
// functionality of the BlobKV implementation is working correctly.
//
// These are not unit tests. These are intended to be run against an actual
// database, either on initialization of a BlobKV implementation or from the
// test suite of an implementation that can run without external services.
func TestBlobKV(kv BlobKV) error {
	var (
		key = "testops-key"

		batchKey1 = "testops-batchkey-1"
		batchKey2 = "testops-batchkey-2"

		value1 = []byte("value-1")
		value2 = []byte("value-2")
		value3 = []byte("value-3")
	)

	// Clear out any previous test data
	err := kv.Del([]string{key, batchKey1, batchKey2})
	if err != nil {
		return err
	}

	// Verify that the entry doesn't exist
	blobs, err := kv.Get([]string{key})
	if err != nil {
		return err
	}
	if _, ok := blobs[key]; ok {
		return errors.Errorf("blob found after delete: %v", key)
	}

	// Put a cleartext entry
	err = kv.Put(map[string][]byte{key: value1}, false)
	if err != nil {
		return err
	}
	err = verifyBlob(kv, key, value1)
	if err != nil {
		return err
	}

	// Overwrite the entry with an encrypted value
	err = kv.Put(map[string][]byte{key: value2}, true)
	if err != nil {
		return err
	}
	err = verifyBlob(kv, key, value2)
	if err != nil {
		return err
	}

	// Overwrite the entry back to cleartext
	err = kv.Put(map[string][]byte{key: value3}, false)
	if err != nil {
		return err
	}
	err = verifyBlob(kv, key, value3)
	if err != nil {
		return err
	}

	// Put a batch
	err = kv.Put(map[string][]byte{
		batchKey1: value1,
		batchKey2: value2,
	}, true)
	if err != nil {
		return err
	}
	err = verifyBlob(kv, batchKey1, value1)
	if err != nil {
		return err
	}
	err = verifyBlob(kv, batchKey2, value2)
	if err != nil {
		return err
	}

	// Delete everything
	keys := []string{key, batchKey1, batchKey2}
	err = kv.Del(keys)
	if err != nil {
		return err
	}
	blobs, err = kv.Get(keys)
	if err != nil {
		return err
	}
	if len(blobs) != 0 {
		return errors.Errorf("got %v blobs after delete, want 0",
			len(blobs))
	}

	return nil
}

// verifyBlob verifies that the store holds the provided value for the key.
func verifyBlob(kv BlobKV, key string, value []byte) error {
	blobs, err := kv.Get([]string{key})
	if err != nil {
		return err
	}
	b, ok := blobs[key]
	if !ok {
		return errors.Errorf("blob not found: %v", key)
	}
	if !bytes.Equal(b, value) {
		return errors.Errorf("got %s, want %s", b, value)
	}
	return nil
}
