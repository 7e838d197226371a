// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const (
	queryInsertNonce = "INSERT INTO nonce () VALUES ();"
	queryLastNonce   = "SELECT LAST_INSERT_ID();"
)

// insertNonce inserts a new row into the nonce table. The auto incremented
// value of the row is the new nonce.
func (s *mysql) insertNonce(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, queryInsertNonce)
	if err != nil {
		return errors.Wrap(err, "insert nonce")
	}
	return nil
}

// queryNonce returns the nonce value that was created by the most recent
// insert on the provided transaction's connection.
func (s *mysql) queryNonce(ctx context.Context, tx *sql.Tx) (int64, error) {
	var nonce int64
	err := tx.QueryRowContext(ctx, queryLastNonce).Scan(&nonce)
	if err != nil {
		return 0, errors.Wrap(err, "query nonce")
	}
	return nonce, nil
}

// nonce creates and returns a new, unique nonce value. The nonce is created
// using the provided transaction so that it is rolled into the same atomic
// operation as the blobs that it encrypts.
func (s *mysql) nonce(ctx context.Context, tx *sql.Tx) (int64, error) {
	err := s.insertNonce(ctx, tx)
	if err != nil {
		return 0, err
	}
	return s.queryNonce(ctx, tx)
}
