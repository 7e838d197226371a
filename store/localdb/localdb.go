// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package localdb

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/dvote/store"
	"github.com/decred/dvote/util"
	"github.com/marcopeereboom/sbox"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	// storeDirname contains the directory name that the leveldb
	// database will be saved to.
	storeDirname = "store"

	// encryptionKeyFilename is the filename of the encryption key that
	// is created in the app directory.
	encryptionKeyFilename = "leveldb-sbox.key"
)

var (
	_ store.BlobKV = (*localdb)(nil)
	_ store.Walker = (*localdb)(nil)
)

// localdb implements the store BlobKV interface using leveldb.
//
// All exported calls are locked against concurrent access. Writes are made
// using a leveldb batch so that a Put or Del is applied atomically.
//
// A random secretbox encryption key is created on first use and saved to the
// app dir. Blobs are encrypted using random 24 byte nonces.
type localdb struct {
	sync.Mutex
	db       *leveldb.DB
	key      *[32]byte
	shutdown bool
}

// encrypt encrypts and returns the provided data blob.
func (l *localdb) encrypt(data []byte) ([]byte, error) {
	return sbox.Encrypt(0, l.key, data)
}

// decrypt decrypts the provided data blob. It unpacks the sbox header and
// returns the version and unencrypted data if successful.
func (l *localdb) decrypt(data []byte) ([]byte, uint32, error) {
	return sbox.Decrypt(l.key, data)
}

// isEncrypted returns whether the provided blob has been prefixed with an sbox
// header, indicating that it is an encrypted blob.
func isEncrypted(b []byte) bool {
	return bytes.HasPrefix(b, []byte("sbox"))
}

// put adds the provided key-value pairs to the batch. The caller's map is not
// modified.
func (l *localdb) put(blobs map[string][]byte, encrypt bool, batch *leveldb.Batch) error {
	for k, v := range blobs {
		if encrypt {
			e, err := l.encrypt(v)
			if err != nil {
				return errors.WithStack(err)
			}
			v = e
		}
		batch.Put([]byte(k), v)
	}
	return nil
}

// open decrypts the blob if it is encrypted.
func (l *localdb) open(blob []byte) ([]byte, error) {
	encrypted := isEncrypted(blob)
	log.Tracef("Blob is encrypted: %v", encrypted)
	if !encrypted {
		return blob, nil
	}
	b, _, err := l.decrypt(blob)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Put saves the provided key-value pairs to the store. This operation is
// performed atomically.
//
// This function satisfies the store BlobKV interface.
func (l *localdb) Put(blobs map[string][]byte, encrypt bool) error {
	log.Tracef("Put: %v blobs", len(blobs))

	l.Lock()
	defer l.Unlock()
	if l.shutdown {
		return store.ErrShutdown
	}

	batch := new(leveldb.Batch)
	err := l.put(blobs, encrypt, batch)
	if err != nil {
		return err
	}
	err = l.db.Write(batch, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	log.Debugf("Saved blobs (%v) to store", len(blobs))

	return nil
}

// Del deletes the provided blobs from the store. This operation is performed
// atomically.
//
// This function satisfies the store BlobKV interface.
func (l *localdb) Del(keys []string) error {
	log.Tracef("Del: %v", keys)

	l.Lock()
	defer l.Unlock()
	if l.shutdown {
		return store.ErrShutdown
	}

	batch := new(leveldb.Batch)
	for _, v := range keys {
		batch.Delete([]byte(v))
	}
	err := l.db.Write(batch, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	log.Debugf("Deleted blobs (%v) from store", len(keys))

	return nil
}

// Get returns blobs from the store for the provided keys. An entry will not
// exist in the returned map if for any blobs that are not found. It is the
// responsibility of the caller to ensure a blob was returned for all provided
// keys.
//
// This function satisfies the store BlobKV interface.
func (l *localdb) Get(keys []string) (map[string][]byte, error) {
	log.Tracef("Get: %v", keys)

	l.Lock()
	defer l.Unlock()
	if l.shutdown {
		return nil, store.ErrShutdown
	}

	blobs := make(map[string][]byte, len(keys))
	for _, v := range keys {
		b, err := l.db.Get([]byte(v), nil)
		if err != nil {
			if errors.Is(err, leveldb.ErrNotFound) {
				// Blob does not exist. This is ok.
				continue
			}
			return nil, errors.WithStack(err)
		}
		b, err = l.open(b)
		if err != nil {
			return nil, err
		}
		blobs[v] = b
	}

	return blobs, nil
}

// Walk invokes the provided callback for every entry in the store in key
// order. Iteration stops at the first callback error.
//
// This function satisfies the store Walker interface.
func (l *localdb) Walk(fn func(key string, blob []byte) error) error {
	log.Tracef("Walk")

	l.Lock()
	defer l.Unlock()
	if l.shutdown {
		return store.ErrShutdown
	}

	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		// The iterator reuses its buffers between calls
		key := string(iter.Key())
		v := make([]byte, len(iter.Value()))
		copy(v, iter.Value())

		b, err := l.open(v)
		if err != nil {
			return err
		}
		err = fn(key, b)
		if err != nil {
			return err
		}
	}

	return errors.WithStack(iter.Error())
}

// Close closes the store connection.
//
// This function satisfies the store BlobKV interface.
func (l *localdb) Close() {
	log.Tracef("Close")

	l.Lock()
	defer l.Unlock()
	if l.shutdown {
		return
	}

	// Prevent any more localdb calls
	l.shutdown = true

	// Zero the encryption key
	util.Zero(l.key[:])

	l.db.Close()
}

// New returns a new localdb. The leveldb database is created in the data dir
// and the encryption key is loaded from the app dir, or created if it does
// not exist yet.
func New(appDir, dataDir string) (*localdb, error) {
	switch {
	case appDir == "":
		return nil, errors.Errorf("app dir not provided")
	case dataDir == "":
		return nil, errors.Errorf("data dir not provided")
	}

	// Setup leveldb data dir
	fp := filepath.Join(dataDir, storeDirname)
	err := os.MkdirAll(fp, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Load encryption key
	err = os.MkdirAll(appDir, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	key, err := util.LoadEncryptionKey(log, KeyFile(appDir))
	if err != nil {
		return nil, err
	}

	// Open database. Leveldb holds a file lock on the directory for as
	// long as the database is open.
	db, err := leveldb.OpenFile(fp, nil)
	if err != nil {
		util.Zero(key[:])
		return nil, errors.WithStack(err)
	}

	log.Infof("Local store: %v", fp)

	return &localdb{
		db:  db,
		key: key,
	}, nil
}

// DataDir returns the directory that the leveldb database lives in for the
// provided data dir.
func DataDir(dataDir string) string {
	return filepath.Join(dataDir, storeDirname)
}

// KeyFile returns the path of the encryption key file for the provided app
// dir.
func KeyFile(appDir string) string {
	return filepath.Join(appDir, encryptionKeyFilename)
}
