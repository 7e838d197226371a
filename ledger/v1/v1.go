// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package v1 defines the commands, payloads, error codes and settings of the
// delegation voting ledger.
package v1

const (
	ID             = "ledger"
	Version uint32 = 1
)

const (
	// Write commands. The caller identity is supplied by the host
	// that executes the command.
	CmdAddProposal = "addproposal" // Add a proposal, authority only
	CmdRegister    = "register"    // Grant voting weight, authority only
	CmdDelegate    = "delegate"    // Delegate the caller's weight
	CmdVote        = "vote"        // Vote for a proposal

	// Read commands
	CmdWinner           = "winner"           // Get the winning proposal
	CmdParticipant      = "participant"      // Get a participant
	CmdProposal         = "proposal"         // Get a proposal
	CmdProposals        = "proposals"        // Get all proposals
	CmdParticipants     = "participants"     // Get all participants
	CmdParticipantCount = "participantcount" // Get the participant count
	CmdSummary          = "summary"          // Get the ledger summary
)

// Participant is an identity that has been touched by the ledger.
//
// Voted is set once the participant's weight has been either cast for a
// proposal or forwarded to another participant. A participant that delegated
// has the Delegate field set. A participant that voted directly has the Vote
// field set and no Delegate.
type Participant struct {
	Identity   string `json:"identity"`
	Weight     uint64 `json:"weight"`
	Voted      bool   `json:"voted"`
	Vote       uint32 `json:"vote"`
	Delegate   string `json:"delegate,omitempty"`
	Registered bool   `json:"registered"` // Has been granted weight
}

// Proposal is an entry in the ledger's append-only proposal list.
type Proposal struct {
	Index     uint32 `json:"index"`
	Name      string `json:"name"`
	VoteCount uint64 `json:"votecount"`
}

// Summary contains the ledger wide counters.
//
// TotalWeight is the sum of all weight that has been granted by the
// authority. It is always equal to UnspentWeight + TalliedWeight.
type Summary struct {
	ID            string `json:"id"`
	Authority     string `json:"authority"`
	Proposals     uint32 `json:"proposals"`
	Participants  uint64 `json:"participants"`
	TotalWeight   uint64 `json:"totalweight"`
	TalliedWeight uint64 `json:"talliedweight"`
	UnspentWeight uint64 `json:"unspentweight"`
}

// AddProposal appends a new proposal to the ledger.
type AddProposal struct {
	Name string `json:"name"`
}

// AddProposalReply is the reply to the AddProposal command.
type AddProposalReply struct {
	Index uint32 `json:"index"`
}

// Register grants voting weight to a participant. Repeated grants to the
// same identity accumulate.
type Register struct {
	Identity string `json:"identity"`
	Weight   uint64 `json:"weight"`
}

// RegisterReply is the reply to the Register command.
type RegisterReply struct {
	Participant Participant `json:"participant"`
}

// Delegate forwards the caller's weight to the target. The delegation is
// resolved to the end of the target's delegation chain.
type Delegate struct {
	Target string `json:"target"`
}

// DelegateReply is the reply to the Delegate command. Terminal is the
// participant that the delegation resolved to.
type DelegateReply struct {
	Terminal string `json:"terminal"`
}

// Vote casts the caller's weight for the proposal at the provided index.
type Vote struct {
	Index uint32 `json:"index"`
}

// VoteReply is the reply to the Vote command.
type VoteReply struct {
	Proposal Proposal `json:"proposal"`
}

// Winner requests the winning proposal.
type Winner struct{}

// WinnerReply is the reply to the Winner command. Winner is false when the
// ledger does not contain any proposals.
type WinnerReply struct {
	Winner   bool     `json:"winner"`
	Proposal Proposal `json:"proposal"`
}

// ParticipantGet requests a participant. Unknown identities return the zero
// valued participant.
type ParticipantGet struct {
	Identity string `json:"identity"`
}

// ParticipantGetReply is the reply to the ParticipantGet command.
type ParticipantGetReply struct {
	Participant Participant `json:"participant"`
}

// ProposalGet requests the proposal at the provided index.
type ProposalGet struct {
	Index uint32 `json:"index"`
}

// ProposalGetReply is the reply to the ProposalGet command.
type ProposalGetReply struct {
	Proposal Proposal `json:"proposal"`
}

// Proposals requests all proposals.
type Proposals struct{}

// ProposalsReply is the reply to the Proposals command. The proposals are
// ordered by index.
type ProposalsReply struct {
	Proposals []Proposal `json:"proposals"`
}

// Participants requests all participants.
type Participants struct{}

// ParticipantsReply is the reply to the Participants command. The
// participants are sorted by identity.
type ParticipantsReply struct {
	Participants []Participant `json:"participants"`
}

// ParticipantCount requests the number of participants that have been
// granted weight.
type ParticipantCount struct{}

// ParticipantCountReply is the reply to the ParticipantCount command.
type ParticipantCountReply struct {
	Count uint64 `json:"count"`
}

// SummaryGet requests the ledger summary.
type SummaryGet struct{}

// SummaryGetReply is the reply to the SummaryGet command.
type SummaryGetReply struct {
	Summary Summary `json:"summary"`
}
