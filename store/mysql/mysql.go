// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/dvote/store"
	"github.com/decred/dvote/util"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	_ "github.com/go-sql-driver/mysql"
)

const (
	// Database options
	connTimeout     = 1 * time.Minute
	connMaxLifetime = 1 * time.Minute
	maxOpenConns    = 0 // 0 is unlimited
	maxIdleConns    = 100

	// Database table names
	tableNameKeyValue = "kv"
	tableNameNonce    = "nonce"

	// placeholderLimit is the max number of placeholders that are
	// included in a single select statement.
	placeholderLimit = 1000
)

// tableKeyValue defines the key-value table. Keys are compared byte for byte
// so that identities that only differ by case map to different rows.
const tableKeyValue = `
  k VARBINARY(255) NOT NULL PRIMARY KEY,
  v LONGBLOB NOT NULL
`

// Key-value table queries
const (
	queryPut = `INSERT INTO kv (k, v) VALUES (?, ?)
    ON DUPLICATE KEY UPDATE v = VALUES(v);`
	queryDel  = "DELETE FROM kv WHERE k IN (?);"
	queryWalk = "SELECT k, v FROM kv ORDER BY k;"
)

// tableNonce defines the table used to track the encryption nonce.
const tableNonce = `
  n BIGINT PRIMARY KEY AUTO_INCREMENT
`

var (
	_ store.BlobKV = (*mysql)(nil)
	_ store.Walker = (*mysql)(nil)
)

// mysql implements the store BlobKV interface using a mysql driver.
type mysql struct {
	shutdown uint64
	db       *sql.DB
	getNonce func(context.Context, *sql.Tx) ([24]byte, error)
	key      [32]byte
}

func ctxWithTimeout() (context.Context, func()) {
	return context.WithTimeout(context.Background(), connTimeout)
}

func (s *mysql) isShutdown() bool {
	return atomic.LoadUint64(&s.shutdown) != 0
}

// rollback attempts to roll back the provided transaction. A failed rollback
// leaves the database in an unknown state and is fatal.
func rollback(tx *sql.Tx, err error) {
	if err2 := tx.Rollback(); err2 != nil {
		// We're in trouble!
		panic(fmt.Sprintf("%v, unable to rollback: %v", err, err2))
	}
}

// put saves the provided key-value pairs using the provided transaction. The
// caller's map is not modified.
func (s *mysql) put(ctx context.Context, tx *sql.Tx, blobs map[string][]byte, encrypt bool) error {
	for k, v := range blobs {
		if len(k) > store.KeyLengthMax {
			return errors.Errorf("key exceeds %v bytes: %v",
				store.KeyLengthMax, k)
		}
		if encrypt {
			e, err := s.encrypt(ctx, tx, v)
			if err != nil {
				return errors.Errorf("encrypt: %v", err)
			}
			v = e
		}
		_, err := tx.ExecContext(ctx, queryPut, k, v)
		if err != nil {
			return errors.Wrap(err, "exec put")
		}
	}

	return nil
}

// Put saves the provided key-value pairs to the store. This operation is
// performed atomically.
//
// This function satisfies the store BlobKV interface.
func (s *mysql) Put(blobs map[string][]byte, encrypt bool) error {
	log.Tracef("Put: %v blobs", len(blobs))

	if s.isShutdown() {
		return store.ErrShutdown
	}

	ctx, cancel := ctxWithTimeout()
	defer cancel()

	opts := &sql.TxOptions{
		Isolation: sql.LevelDefault,
	}
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}

	err = s.put(ctx, tx, blobs, encrypt)
	if err != nil {
		rollback(tx, err)
		return err
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrap(err, "commit tx")
	}

	log.Debugf("Saved blobs (%v) to store", len(blobs))

	return nil
}

// Del deletes the provided blobs from the store. This operation is performed
// atomically.
//
// This function satisfies the store BlobKV interface.
func (s *mysql) Del(keys []string) error {
	log.Tracef("Del: %v", keys)

	if s.isShutdown() {
		return store.ErrShutdown
	}

	ctx, cancel := ctxWithTimeout()
	defer cancel()

	opts := &sql.TxOptions{
		Isolation: sql.LevelDefault,
	}
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}

	for _, v := range keys {
		_, err = tx.ExecContext(ctx, queryDel, v)
		if err != nil {
			rollback(tx, err)
			return errors.Wrap(err, "exec del")
		}
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrap(err, "commit tx")
	}

	log.Debugf("Deleted blobs (%v) from store", len(keys))

	return nil
}

// selectStatement is a query and the arguments that it is executed with.
type selectStatement struct {
	Query string
	Args  []interface{}
}

// buildPlaceholders returns a parenthesised list of n comma separated
// placeholders.
//
// Ex 3 placeholders: "(?,?,?)"
func buildPlaceholders(n int) string {
	var b strings.Builder
	b.WriteString("(")
	for i := 0; i < n; i++ {
		b.WriteString("?")
		// Don't add a comma on the last one
		if i < n-1 {
			b.WriteString(",")
		}
	}
	b.WriteString(")")
	return b.String()
}

// buildSelectQuery returns a query that selects the key-value pairs for n
// keys.
func buildSelectQuery(n int) string {
	return fmt.Sprintf("SELECT k, v FROM kv WHERE k IN %v;",
		buildPlaceholders(n))
}

// buildSelectStatements splits the provided keys into select statements that
// contain no more than sizeLimit placeholders each.
func buildSelectStatements(keys []string, sizeLimit int) []selectStatement {
	statements := make([]selectStatement, 0, (len(keys)/sizeLimit)+1)
	for start := 0; start < len(keys); start += sizeLimit {
		end := start + sizeLimit
		if end > len(keys) {
			end = len(keys)
		}

		// The keys must be converted to []interface{} for the
		// query method to accept them.
		args := make([]interface{}, 0, end-start)
		for _, v := range keys[start:end] {
			args = append(args, v)
		}

		statements = append(statements, selectStatement{
			Query: buildSelectQuery(len(args)),
			Args:  args,
		})
	}
	return statements
}

// query executes a select statement and adds the returned key-value pairs to
// the reply map.
func (s *mysql) query(ctx context.Context, ss selectStatement, mtx *sync.Mutex, reply map[string][]byte) error {
	log.Tracef("%v", ss.Query)

	rows, err := s.db.QueryContext(ctx, ss.Query, ss.Args...)
	if err != nil {
		return errors.Wrap(err, "query")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k string
			v []byte
		)
		err = rows.Scan(&k, &v)
		if err != nil {
			return errors.Wrap(err, "scan")
		}
		v, err = s.open(v)
		if err != nil {
			return err
		}

		mtx.Lock()
		reply[k] = v
		mtx.Unlock()
	}
	err = rows.Err()
	if err != nil {
		return errors.Wrap(err, "next")
	}

	return nil
}

// open decrypts the blob if it is encrypted.
func (s *mysql) open(blob []byte) ([]byte, error) {
	encrypted := isEncrypted(blob)
	log.Tracef("Blob is encrypted: %v", encrypted)
	if !encrypted {
		return blob, nil
	}
	b, _, err := s.decrypt(blob)
	if err != nil {
		return nil, errors.Errorf("decrypt: %v", err)
	}
	return b, nil
}

// Get returns blobs from the store for the provided keys. An entry will not
// exist in the returned map if for any blobs that are not found. It is the
// responsibility of the caller to ensure a blob was returned for all provided
// keys.
//
// Large key sets are split into multiple select statements that are executed
// concurrently.
//
// This function satisfies the store BlobKV interface.
func (s *mysql) Get(keys []string) (map[string][]byte, error) {
	log.Tracef("Get: %v", keys)

	if s.isShutdown() {
		return nil, store.ErrShutdown
	}

	reply := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return reply, nil
	}

	ctx, cancel := ctxWithTimeout()
	defer cancel()

	var (
		mtx sync.Mutex
		g   errgroup.Group
	)
	for _, ss := range buildSelectStatements(keys, placeholderLimit) {
		ss := ss
		g.Go(func() error {
			return s.query(ctx, ss, &mtx, reply)
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	return reply, nil
}

// Walk invokes the provided callback for every entry in the store in key
// order. The encryption key params are internal to the store and are not
// included.
//
// This function satisfies the store Walker interface.
func (s *mysql) Walk(fn func(key string, blob []byte) error) error {
	log.Tracef("Walk")

	if s.isShutdown() {
		return store.ErrShutdown
	}

	ctx, cancel := ctxWithTimeout()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, queryWalk)
	if err != nil {
		return errors.Wrap(err, "query")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k string
			v []byte
		)
		err = rows.Scan(&k, &v)
		if err != nil {
			return errors.Wrap(err, "scan")
		}
		if k == encryptionKeyParamsKey {
			continue
		}
		v, err = s.open(v)
		if err != nil {
			return err
		}
		err = fn(k, v)
		if err != nil {
			return err
		}
	}

	return errors.WithStack(rows.Err())
}

// Close closes the blob store connection.
//
// This function satisfies the store BlobKV interface.
func (s *mysql) Close() {
	log.Tracef("Close")

	atomic.AddUint64(&s.shutdown, 1)

	// Zero the encryption key
	util.Zero(s.key[:])

	s.db.Close()
}

// createTables creates the key-value and nonce tables if they do not exist
// yet.
func createTables(db *sql.DB) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %v (%v)`,
		tableNameKeyValue, tableKeyValue)
	_, err := db.Exec(q)
	if err != nil {
		return errors.Wrap(err, "create kv table")
	}

	q = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %v (%v)`,
		tableNameNonce, tableNonce)
	_, err = db.Exec(q)
	if err != nil {
		return errors.Wrap(err, "create nonce table")
	}

	return nil
}

// New connects to the MySQL database and returns a new mysql store. The
// password is used for the database connection and to derive the encryption
// key.
func New(host, user, password, dbname string) (*mysql, error) {
	// The password is required to derive the encryption key
	if password == "" {
		return nil, errors.Errorf("password not provided")
	}

	log.Infof("MySQL host: %v:[password]@tcp(%v)/%v", user, host, dbname)

	h := fmt.Sprintf("%v:%v@tcp(%v)/%v", user, password, host, dbname)
	db, err := sql.Open("mysql", h)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Setup database options
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	// Verify database connection
	err = db.Ping()
	if err != nil {
		return nil, errors.Wrap(err, "db ping")
	}

	err = createTables(db)
	if err != nil {
		return nil, err
	}

	s := &mysql{
		db: db,
	}
	s.getNonce = s.getDbNonce

	// Derive encryption key from password. Key is set in argon2idKey
	err = s.deriveEncryptionKey(password)
	if err != nil {
		return nil, errors.Wrap(err, "deriveEncryptionKey")
	}

	return s, nil
}
