// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"

	v1 "github.com/decred/dvote/ledger/v1"
)

// RegisterParticipant grants voting weight to the provided identity. Repeated
// grants to the same identity accumulate. The participant count is
// incremented the first time an identity is granted a non-zero weight. A zero
// weight grant is accepted and changes nothing.
//
// Only the authority can register participants. A participant that has
// already voted cannot be granted more weight.
func (l *Ledger) RegisterParticipant(caller, id string, weight uint64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	_, err := l.registerParticipant(caller, id, weight)
	return err
}

// registerParticipant grants weight to the identity and returns the updated
// participant.
//
// This function must be called WITH the write lock held.
func (l *Ledger) registerParticipant(caller, id string, weight uint64) (*Participant, error) {
	log.Tracef("RegisterParticipant: %v %v %v", caller, id, weight)

	if caller != l.header.Authority {
		return nil, userErr(v1.ErrCodeUnauthorized,
			"%v cannot register participants", caller)
	}
	err := l.validateIdentity(id)
	if err != nil {
		return nil, err
	}
	p := l.participants[id]
	if p.Voted {
		return nil, userErr(v1.ErrCodeAlreadyVoted, "%v", id)
	}
	if weight == 0 {
		return &p, nil
	}
	if l.header.TotalWeight > math.MaxUint64-weight {
		return nil, userErr(v1.ErrCodeInvalidState,
			"total weight would overflow")
	}

	u := l.newUpdate()
	l.addIdentities(u, id)
	p.Weight += weight
	if !p.Registered {
		p.Registered = true
		u.Header.Participants++
	}
	u.Header.TotalWeight += weight
	u.Participants[id] = p

	err = l.commit(u)
	if err != nil {
		return nil, err
	}

	log.Debugf("Participant %v granted %v weight", id, weight)

	return &p, nil
}

// AddProposal appends a new proposal to the ledger and returns its index.
// Proposal names are not required to be unique.
//
// Only the authority can add proposals.
func (l *Ledger) AddProposal(caller, name string) (uint32, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	log.Tracef("AddProposal: %v %v", caller, name)

	if caller != l.header.Authority {
		return 0, userErr(v1.ErrCodeUnauthorized,
			"%v cannot add proposals", caller)
	}
	if uint32(len(name)) > l.proposalNameLengthMax {
		return 0, userErr(v1.ErrCodeInvalidState,
			"proposal name exceeds %v bytes", l.proposalNameLengthMax)
	}
	if l.header.Proposals == math.MaxUint32 {
		return 0, userErr(v1.ErrCodeInvalidState,
			"proposal list is full")
	}

	idx := l.header.Proposals
	u := l.newUpdate()
	u.Header.Proposals++
	u.Proposals[idx] = Proposal{
		Name: name,
	}

	err := l.commit(u)
	if err != nil {
		return 0, err
	}

	log.Debugf("Proposal %v added: %v", idx, name)

	return idx, nil
}
