// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package v1

const (
	// SettingKeyRejectZeroWeight is the setting key for whether a vote
	// from a participant that holds no weight is rejected with
	// ErrCodeNoVotingWeight. Zero weight votes are accepted and have no
	// effect on the tally by default.
	SettingKeyRejectZeroWeight = "rejectzeroweight"

	// SettingKeyIdentityLengthMax is the setting key for the max length
	// of a participant identity. The setting cannot exceed
	// IdentityLengthLimit.
	SettingKeyIdentityLengthMax = "identitylengthmax"

	// IdentityLengthLimit is the largest value that identitylengthmax can
	// be set to. Identities are part of the participant store keys, which
	// are limited to 255 bytes, and the key prefix takes 19 of them.
	IdentityLengthLimit uint32 = 236

	// SettingKeyProposalNameLengthMax is the setting key for the max
	// length of a proposal name in bytes.
	SettingKeyProposalNameLengthMax = "proposalnamelengthmax"

	// Default setting values
	SettingRejectZeroWeight             = false
	SettingIdentityLengthMax     uint32 = 64
	SettingProposalNameLengthMax uint32 = 128
)

var (
	// IdentityChars contains the characters that an identity may contain.
	IdentityChars = []string{"a-z", "A-Z", "0-9", ".", "_", ":", "-"}
)
