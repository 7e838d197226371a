// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package v1

type ErrCode uint32

const (
	ErrCodeInvalid         ErrCode = 0
	ErrCodeUnauthorized    ErrCode = 1
	ErrCodeAlreadyVoted    ErrCode = 2
	ErrCodeInvalidState    ErrCode = 3
	ErrCodeCycleDetected   ErrCode = 4
	ErrCodeInvalidProposal ErrCode = 5
	ErrCodeNoVotingWeight  ErrCode = 6
	ErrCodeInvalidPayload  ErrCode = 7

	// ErrCodeLast is used by unit tests to verify that all error codes
	// have a human readable entry in the ErrCodes map. It will never be
	// populated.
	ErrCodeLast ErrCode = 8
)

// ErrCodes contains the human readable error string for the error codes.
var ErrCodes = map[ErrCode]string{
	ErrCodeInvalid:         "invalid error code",
	ErrCodeUnauthorized:    "caller is not the authority",
	ErrCodeAlreadyVoted:    "participant has already voted",
	ErrCodeInvalidState:    "invalid state",
	ErrCodeCycleDetected:   "delegation cycle detected",
	ErrCodeInvalidProposal: "invalid proposal",
	ErrCodeNoVotingWeight:  "participant has no voting weight",
	ErrCodeInvalidPayload:  "invalid payload",
}
