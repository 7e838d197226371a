// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger implements a single authority, weighted delegation voting
// ledger.
//
// The authority adds proposals and grants voting weight to participants.
// Participants either vote for a proposal directly or delegate their weight
// to another participant. Delegations are resolved to the end of the
// delegation chain at the time the delegation is made, so weight is only ever
// moved once. The total amount of weight that has been granted is always
// equal to the unspent weight of the participants that have not voted plus
// the vote counts of all proposals.
//
// Every exported method is executed under a single ledger lock. A write
// either applies in full, including being persisted to the backend, or it
// returns an error and leaves the ledger untouched.
package ledger

import (
	"regexp"
	"sort"
	"sync"

	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/decred/dvote/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrNotInitialized is returned by a backend that does not contain
	// a ledger.
	ErrNotInitialized = errors.New("ledger not initialized")

	// ErrAlreadyInitialized is returned when attempting to create a new
	// ledger in a backend that already contains one.
	ErrAlreadyInitialized = errors.New("ledger already initialized")
)

// Participant is the ledger state of a single identity. Identities that the
// ledger has never touched have the zero value.
type Participant struct {
	// Weight is the voting weight that the participant can currently
	// assign. It is always zero once the participant has voted.
	Weight uint64

	// Voted is a one way latch that is set once the participant's
	// weight has been cast for a proposal or forwarded to another
	// participant.
	Voted bool

	// Vote is the index of the proposal that the participant voted for.
	// It is only meaningful when Voted is set and Delegate is empty.
	Vote uint32

	// Delegate is the participant that this participant's weight was
	// forwarded to.
	Delegate string

	// Registered is set the first time the authority grants the
	// participant a non-zero amount of weight.
	Registered bool
}

// delegated returns whether the participant has forwarded its weight to
// another participant.
func (p Participant) delegated() bool {
	return p.Voted && p.Delegate != ""
}

// votedDirectly returns whether the participant cast its own vote for a
// proposal.
func (p Participant) votedDirectly() bool {
	return p.Voted && p.Delegate == ""
}

// Proposal is an entry in the append-only proposal list.
type Proposal struct {
	Name      string
	VoteCount uint64
}

// Header contains the ledger wide fields.
type Header struct {
	ID           string // Random UUID
	Authority    string
	Proposals    uint32 // Number of proposals
	Participants uint64 // Number of registered participants
	TotalWeight  uint64 // Sum of all granted weight
}

// State is the full state of a ledger as it is loaded from a backend.
type State struct {
	Header       Header
	Proposals    []Proposal
	Participants map[string]Participant

	// Identities contains every key of the Participants map in the
	// order that the identities were first seen.
	Identities []string
}

// Update contains the records that are changed by a single ledger write. The
// backend must persist an update atomically.
type Update struct {
	// Header is the full header after the write.
	Header Header

	// Proposals contains the new or changed proposals by index.
	Proposals map[uint32]Proposal

	// Participants contains the new or changed participants.
	Participants map[string]Participant

	// Identities is the full identity list after the write. It is only
	// set when the write adds a new identity to the ledger.
	Identities []string
}

// Backend persists the ledger state.
type Backend interface {
	// Save persists the provided update. Either the entire update is
	// saved or none of it is.
	Save(Update) error

	// Load returns the persisted ledger state. ErrNotInitialized is
	// returned if the backend does not contain a ledger.
	Load() (*State, error)
}

// Setting is a ledger setting that overrides a default.
type Setting struct {
	Key   string
	Value string
}

// Ledger is a weighted delegation voting ledger.
type Ledger struct {
	mtx          sync.RWMutex
	backend      Backend // May be nil
	header       Header
	proposals    []Proposal
	participants map[string]Participant
	identities   []string

	// Settings
	rejectZeroWeight      bool
	proposalNameLengthMax uint32
	identityRegexp        *regexp.Regexp
}

// newLedger returns a ledger with the provided settings applied and no state.
func newLedger(backend Backend, settings []Setting) (*Ledger, error) {
	s, err := parseSettings(settings)
	if err != nil {
		return nil, err
	}
	r, err := util.Regexp(v1.IdentityChars, 1,
		uint64(s.identityLengthMax))
	if err != nil {
		return nil, err
	}
	return &Ledger{
		backend:               backend,
		participants:          make(map[string]Participant),
		rejectZeroWeight:      s.rejectZeroWeight,
		proposalNameLengthMax: s.proposalNameLengthMax,
		identityRegexp:        r,
	}, nil
}

// New creates a new ledger that is administered by the provided authority.
// The ledger is saved to the backend if one is provided. A nil backend keeps
// the ledger in memory only.
func New(authority string, backend Backend, settings []Setting) (*Ledger, error) {
	l, err := newLedger(backend, settings)
	if err != nil {
		return nil, err
	}
	err = l.validateIdentity(authority)
	if err != nil {
		return nil, err
	}

	if backend != nil {
		_, err := backend.Load()
		switch {
		case err == nil:
			return nil, ErrAlreadyInitialized
		case errors.Is(err, ErrNotInitialized):
			// Expected; continue
		default:
			return nil, err
		}
	}

	u := Update{
		Header: Header{
			ID:        uuid.New().String(),
			Authority: authority,
		},
	}
	err = l.commit(&u)
	if err != nil {
		return nil, err
	}

	log.Infof("Ledger %v created by %v", l.header.ID, authority)

	return l, nil
}

// Open loads an existing ledger from the backend. The loaded state is
// verified before the ledger is returned.
func Open(backend Backend, settings []Setting) (*Ledger, error) {
	if backend == nil {
		return nil, errors.Errorf("backend not provided")
	}
	l, err := newLedger(backend, settings)
	if err != nil {
		return nil, err
	}
	s, err := backend.Load()
	if err != nil {
		return nil, err
	}

	l.header = s.Header
	l.proposals = s.Proposals
	l.identities = s.Identities
	if s.Participants != nil {
		l.participants = s.Participants
	}

	err = l.verify()
	if err != nil {
		return nil, err
	}

	log.Debugf("Ledger %v loaded: %v proposals, %v identities",
		l.header.ID, len(l.proposals), len(l.identities))

	return l, nil
}

// validateIdentity returns an InvalidState user error if the identity is not
// well formed.
func (l *Ledger) validateIdentity(id string) error {
	if !l.identityRegexp.MatchString(id) {
		return userErr(v1.ErrCodeInvalidState, "invalid identity '%v'", id)
	}
	return nil
}

// newUpdate returns an update that starts from the current header.
func (l *Ledger) newUpdate() *Update {
	return &Update{
		Header:       l.header,
		Proposals:    make(map[uint32]Proposal, 1),
		Participants: make(map[string]Participant, 2),
	}
}

// addIdentities sets the identity list of the update if any of the provided
// identities are new to the ledger.
func (l *Ledger) addIdentities(u *Update, ids ...string) {
	var identities []string
	for _, id := range ids {
		if _, ok := l.participants[id]; ok {
			continue
		}
		if identities == nil {
			identities = make([]string, len(l.identities), len(l.identities)+len(ids))
			copy(identities, l.identities)
		}
		identities = append(identities, id)
	}
	if identities != nil {
		u.Identities = identities
	}
}

// commit persists the update to the backend and then applies it to the in
// memory state. Nothing is applied if the backend fails.
//
// This function must be called WITH the write lock held.
func (l *Ledger) commit(u *Update) error {
	if l.backend != nil {
		err := l.backend.Save(*u)
		if err != nil {
			return err
		}
	}

	l.header = u.Header
	for idx, p := range u.Proposals {
		for uint32(len(l.proposals)) <= idx {
			l.proposals = append(l.proposals, Proposal{})
		}
		l.proposals[idx] = p
	}
	for id, p := range u.Participants {
		l.participants[id] = p
	}
	if u.Identities != nil {
		l.identities = u.Identities
	}

	return nil
}

// sortedIdentities returns all known identities sorted lexicographically.
//
// This function must be called WITH the read lock held.
func (l *Ledger) sortedIdentities() []string {
	ids := make([]string, len(l.identities))
	copy(ids, l.identities)
	sort.Strings(ids)
	return ids
}
