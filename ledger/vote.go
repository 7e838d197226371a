// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// Vote casts all of the caller's voting weight for the proposal at the
// provided index and marks the caller as having voted.
//
// A participant without any weight is allowed to vote by default. The vote is
// recorded and has no effect on the tally. The rejectzeroweight setting
// rejects these votes instead.
func (l *Ledger) Vote(caller string, index uint32) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	_, err := l.vote(caller, index)
	return err
}

// vote casts the caller's vote and returns the updated proposal.
//
// This function must be called WITH the write lock held.
func (l *Ledger) vote(caller string, index uint32) (*Proposal, error) {
	log.Tracef("Vote: %v %v", caller, index)

	err := l.validateIdentity(caller)
	if err != nil {
		return nil, err
	}
	voter := l.participants[caller]
	if voter.Voted {
		return nil, userErr(v1.ErrCodeAlreadyVoted, "%v", caller)
	}
	if index >= uint32(len(l.proposals)) {
		return nil, userErr(v1.ErrCodeInvalidProposal,
			"index %v, proposals %v", index, len(l.proposals))
	}
	if voter.Weight == 0 && l.rejectZeroWeight {
		return nil, userErr(v1.ErrCodeNoVotingWeight, "%v", caller)
	}

	u := l.newUpdate()
	l.addIdentities(u, caller)
	weight := voter.Weight
	p := l.proposals[index]
	p.VoteCount += weight
	u.Proposals[index] = p

	voter.Weight = 0
	voter.Voted = true
	voter.Vote = index
	u.Participants[caller] = voter

	err = l.commit(u)
	if err != nil {
		return nil, err
	}

	log.Debugf("Participant %v voted %v weight for proposal %v",
		caller, weight, index)

	return &p, nil
}

// winningProposal returns the index of the proposal with the highest vote
// count. The lowest index wins a tie. The returned bool is false if there are
// no proposals.
//
// This function must be called WITH the read lock held.
func (l *Ledger) winningProposal() (uint32, bool) {
	if len(l.proposals) == 0 {
		return 0, false
	}
	var winner uint32
	for i := 1; i < len(l.proposals); i++ {
		if l.proposals[i].VoteCount > l.proposals[winner].VoteCount {
			winner = uint32(i)
		}
	}
	return winner, true
}

// WinningProposal returns the index of the proposal with the highest vote
// count. The proposal with the lowest index wins a tie. The returned bool is
// false if the ledger does not contain any proposals.
func (l *Ledger) WinningProposal() (uint32, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.winningProposal()
}

// WinnerName returns the name of the winning proposal. An empty string is
// returned if the ledger does not contain any proposals.
func (l *Ledger) WinnerName() string {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	idx, ok := l.winningProposal()
	if !ok {
		return ""
	}
	return l.proposals[idx].Name
}
