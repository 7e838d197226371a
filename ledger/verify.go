// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"

	"github.com/pkg/errors"
)

// Verify checks the ledger state against the ledger invariants. An error that
// wraps ErrCorrupt is returned for the first violation that is found.
//
// The following is verified:
//   - The unspent weight of all participants that have not voted plus the
//     vote counts of all proposals equals the total granted weight.
//   - A participant that has voted holds no weight.
//   - A participant that has not voted has no delegate.
//   - Every direct vote is for an existing proposal.
//   - Every delegate is a known participant other than the delegator.
//   - The counters in the header match the stored records.
func (l *Ledger) Verify() error {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.verify()
}

// verify performs the checks described in Verify.
//
// This function must be called WITH the read lock held.
func (l *Ledger) verify() error {
	if l.header.Proposals != uint32(len(l.proposals)) {
		return errors.Wrapf(ErrCorrupt, "header has %v proposals, found %v",
			l.header.Proposals, len(l.proposals))
	}
	if len(l.identities) != len(l.participants) {
		return errors.Wrapf(ErrCorrupt, "%v identities, %v participants",
			len(l.identities), len(l.participants))
	}

	var (
		unspent    uint64
		tallied    uint64
		registered uint64
	)
	for _, id := range l.identities {
		p, ok := l.participants[id]
		if !ok {
			return errors.Wrapf(ErrCorrupt, "participant %v not found", id)
		}
		if p.Registered {
			registered++
		}
		switch {
		case !p.Voted:
			if p.Delegate != "" {
				return errors.Wrapf(ErrCorrupt, "participant %v has not "+
					"voted but has delegate %v", id, p.Delegate)
			}
			if unspent > math.MaxUint64-p.Weight {
				return errors.Wrapf(ErrCorrupt, "unspent weight overflow")
			}
			unspent += p.Weight
			continue
		case p.Weight != 0:
			return errors.Wrapf(ErrCorrupt, "participant %v has voted "+
				"and holds %v weight", id, p.Weight)
		case p.Delegate == "":
			if p.Vote >= uint32(len(l.proposals)) {
				return errors.Wrapf(ErrCorrupt, "participant %v voted "+
					"for unknown proposal %v", id, p.Vote)
			}
		default:
			if p.Delegate == id {
				return errors.Wrapf(ErrCorrupt, "participant %v "+
					"delegated to itself", id)
			}
			if _, ok := l.participants[p.Delegate]; !ok {
				return errors.Wrapf(ErrCorrupt, "participant %v "+
					"delegated to unknown participant %v", id, p.Delegate)
			}
		}
	}
	for i, v := range l.proposals {
		if tallied > math.MaxUint64-v.VoteCount {
			return errors.Wrapf(ErrCorrupt, "proposal %v vote count "+
				"overflow", i)
		}
		tallied += v.VoteCount
	}

	if registered != l.header.Participants {
		return errors.Wrapf(ErrCorrupt, "header has %v participants, "+
			"found %v", l.header.Participants, registered)
	}
	if unspent > math.MaxUint64-tallied ||
		unspent+tallied != l.header.TotalWeight {
		return errors.Wrapf(ErrCorrupt, "weight not conserved: unspent "+
			"%v, tallied %v, granted %v", unspent, tallied,
			l.header.TotalWeight)
	}

	return nil
}
