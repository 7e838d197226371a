// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/pkg/errors"
)

var (
	// ErrCmdInvalid is returned when an unknown command is executed.
	ErrCmdInvalid = errors.New("invalid ledger command")

	// ErrCorrupt is returned when the ledger state violates one of the
	// ledger invariants.
	ErrCorrupt = errors.New("ledger state is corrupt")
)

// UserErr represents an error that was caused by the caller. A ledger call
// that returns a UserErr has not changed any state.
type UserErr struct {
	Code    v1.ErrCode
	Context string
}

// Error satisfies the error interface.
func (e UserErr) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("ledger user err: %v", v1.ErrCodes[e.Code])
	}
	return fmt.Sprintf("ledger user err: %v: %v",
		v1.ErrCodes[e.Code], e.Context)
}

// userErr returns a UserErr with a formatted context.
func userErr(code v1.ErrCode, format string, args ...interface{}) UserErr {
	return UserErr{
		Code:    code,
		Context: fmt.Sprintf(format, args...),
	}
}
