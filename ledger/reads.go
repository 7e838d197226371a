// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// ID returns the ledger ID.
func (l *Ledger) ID() string {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.header.ID
}

// Authority returns the identity of the ledger authority.
func (l *Ledger) Authority() string {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.header.Authority
}

// Participant returns the participant for the provided identity. The zero
// value is returned for identities that the ledger does not know about.
func (l *Ledger) Participant(id string) Participant {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.participants[id]
}

// Participants returns a copy of all participants that the ledger knows
// about, keyed by identity.
func (l *Ledger) Participants() map[string]Participant {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	p := make(map[string]Participant, len(l.participants))
	for k, v := range l.participants {
		p[k] = v
	}
	return p
}

// ParticipantCount returns the number of identities that have been granted
// a non-zero weight.
func (l *Ledger) ParticipantCount() uint64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.header.Participants
}

// Proposal returns the proposal at the provided index.
func (l *Ledger) Proposal(index uint32) (*Proposal, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	if index >= uint32(len(l.proposals)) {
		return nil, userErr(v1.ErrCodeInvalidProposal,
			"index %v, proposals %v", index, len(l.proposals))
	}
	p := l.proposals[index]
	return &p, nil
}

// Proposals returns a copy of all proposals ordered by index.
func (l *Ledger) Proposals() []Proposal {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	p := make([]Proposal, len(l.proposals))
	copy(p, l.proposals)
	return p
}

// ProposalCount returns the number of proposals.
func (l *Ledger) ProposalCount() uint32 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return uint32(len(l.proposals))
}

// TotalWeight returns the sum of all weight that has been granted.
func (l *Ledger) TotalWeight() uint64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.header.TotalWeight
}

// Summary returns the ledger counters.
func (l *Ledger) Summary() v1.Summary {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	var tallied uint64
	for _, v := range l.proposals {
		tallied += v.VoteCount
	}
	var unspent uint64
	for _, v := range l.participants {
		if !v.Voted {
			unspent += v.Weight
		}
	}

	return v1.Summary{
		ID:            l.header.ID,
		Authority:     l.header.Authority,
		Proposals:     uint32(len(l.proposals)),
		Participants:  l.header.Participants,
		TotalWeight:   l.header.TotalWeight,
		TalliedWeight: tallied,
		UnspentWeight: unspent,
	}
}
