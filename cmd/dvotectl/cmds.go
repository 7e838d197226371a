// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// cmds contains the list of CLI commands.
type cmds struct {
	// The config is parsed separately from the commands and set as a global
	// variable. The DoNotUse config field is here as a workaround to prevent
	// go-flags unknown flag errors during parsing and to allow the config fields
	// to be printed in the go-flags created help message. It should not be used
	// by the commands.
	DoNotUse *config

	Help cmdHelp `command:"help"`

	// Authority commands
	Init        cmdInit        `command:"init"`
	AddProposal cmdAddProposal `command:"addproposal"`
	Register    cmdRegister    `command:"register"`

	// Participant commands
	Delegate cmdDelegate `command:"delegate"`
	Vote     cmdVote     `command:"vote"`

	// Read commands
	Winner           cmdWinner           `command:"winner"`
	Participant      cmdParticipant      `command:"participant"`
	Participants     cmdParticipants     `command:"participants"`
	ParticipantCount cmdParticipantCount `command:"participantcount"`
	Proposal         cmdProposal         `command:"proposal"`
	Proposals        cmdProposals        `command:"proposals"`
	Summary          cmdSummary          `command:"summary"`

	// Maintenance commands
	Verify cmdVerify `command:"verify"`
	Dump   cmdDump   `command:"dump"`
	Backup cmdBackup `command:"backup"`
}
