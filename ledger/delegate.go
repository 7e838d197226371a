// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	v1 "github.com/decred/dvote/ledger/v1"
)

// resolveDelegate walks the delegation chain that starts at the target and
// returns the terminal participant of the chain, i.e. the first participant
// on the chain that has not delegated its own weight.
//
// A CycleDetected error is returned if the chain leads back to the caller.
// The walk is bounded by the number of known participants so that it
// terminates even if the stored state contains a cycle that does not pass
// through the caller.
//
// This function must be called WITH the read lock held.
func (l *Ledger) resolveDelegate(caller, target string) (string, error) {
	var (
		current = target
		bound   = len(l.participants) + 1
	)
	for hops := 0; ; hops++ {
		p := l.participants[current]
		if !p.delegated() {
			return current, nil
		}
		if hops >= bound {
			return "", userErr(v1.ErrCodeInvalidState,
				"delegation chain from %v exceeds %v hops", target, bound)
		}

		log.Tracef("resolveDelegate: %v -> %v", current, p.Delegate)

		current = p.Delegate
		if current == caller {
			return "", userErr(v1.ErrCodeCycleDetected,
				"%v -> %v leads back to %v", caller, target, caller)
		}
	}
}

// Delegate forwards all of the caller's voting weight to the target and marks
// the caller as having voted.
//
// The delegation is resolved to the terminal participant of the target's
// delegation chain, which is recorded as the caller's delegate. If the
// terminal participant has already voted directly, the weight is added to the
// vote count of the proposal it voted for. Otherwise the weight is added to
// the terminal participant's weight so that it can be voted or delegated
// later. The terminal participant is returned.
//
// A participant cannot delegate to itself, cannot delegate after it has
// voted, and cannot create a delegation cycle.
func (l *Ledger) Delegate(caller, target string) (string, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	log.Tracef("Delegate: %v %v", caller, target)

	err := l.validateIdentity(caller)
	if err != nil {
		return "", err
	}
	err = l.validateIdentity(target)
	if err != nil {
		return "", err
	}
	if caller == target {
		return "", userErr(v1.ErrCodeInvalidState,
			"%v cannot delegate to itself", caller)
	}
	sender := l.participants[caller]
	if sender.Voted {
		return "", userErr(v1.ErrCodeAlreadyVoted, "%v", caller)
	}

	terminal, err := l.resolveDelegate(caller, target)
	if err != nil {
		return "", err
	}

	// Move the weight. The sender and the recipient are both part of
	// the same update so the weight is never observable in two places.
	u := l.newUpdate()
	l.addIdentities(u, caller, terminal)
	weight := sender.Weight
	t := l.participants[terminal]
	if t.votedDirectly() {
		p := l.proposals[t.Vote]
		p.VoteCount += weight
		u.Proposals[t.Vote] = p
	} else {
		t.Weight += weight
	}
	u.Participants[terminal] = t

	sender.Weight = 0
	sender.Voted = true
	sender.Delegate = terminal
	u.Participants[caller] = sender

	err = l.commit(u)
	if err != nil {
		return "", err
	}

	if t.votedDirectly() {
		log.Debugf("Participant %v delegated %v weight to %v, tallied "+
			"for proposal %v", caller, weight, terminal, t.Vote)
	} else {
		log.Debugf("Participant %v delegated %v weight to %v",
			caller, weight, terminal)
	}

	return terminal, nil
}
