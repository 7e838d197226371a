// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledgerdb implements a ledger backend on top of a key-value blob
// store.
package ledgerdb

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/decred/dvote/ledger"
	"github.com/decred/dvote/store"
	"github.com/decred/dvote/util"
	"github.com/pkg/errors"
)

const (
	// Key prefixes
	keySummary           = "ledger-summary"
	keyProposalPrefix    = "ledger-proposal-"
	keyParticipantPrefix = "ledger-participant-"
	keyParticipantsIndex = "ledger-participants"
	keyLedgerPrefix      = "ledger-"

	// Data descriptors
	dataDescriptorSummary      = "ledgersummary-v1"
	dataDescriptorProposal     = "ledgerproposal-v1"
	dataDescriptorParticipant  = "ledgerparticipant-v1"
	dataDescriptorParticipants = "ledgerparticipants-v1"
)

// summaryRecord is the persisted ledger header.
type summaryRecord struct {
	ID           string `json:"id"`
	Authority    string `json:"authority"`
	Proposals    uint32 `json:"proposals"`
	Participants uint64 `json:"participants"`
	TotalWeight  uint64 `json:"totalweight"`
}

// proposalRecord is a persisted proposal.
type proposalRecord struct {
	Name      string `json:"name"`
	VoteCount uint64 `json:"votecount"`
}

// participantRecord is a persisted participant.
type participantRecord struct {
	Weight     uint64 `json:"weight"`
	Voted      bool   `json:"voted"`
	Vote       uint32 `json:"vote"`
	Delegate   string `json:"delegate,omitempty"`
	Registered bool   `json:"registered"`
}

// participantsRecord is the persisted list of every identity known to the
// ledger, in the order that the identities were first seen.
type participantsRecord struct {
	Identities []string `json:"identities"`
}

var (
	_ ledger.Backend = (*ledgerDB)(nil)
)

// ledgerDB satisfies the ledger Backend interface.
type ledgerDB struct {
	kv      store.BlobKV
	encrypt bool
}

// New returns a ledger backend that persists the ledger to the provided
// store. The blobs are encrypted by the store when encrypt is set.
func New(kv store.BlobKV, encrypt bool) *ledgerDB {
	return &ledgerDB{
		kv:      kv,
		encrypt: encrypt,
	}
}

func keyProposal(idx uint32) string {
	return keyProposalPrefix + strconv.FormatUint(uint64(idx), 10)
}

func keyParticipant(id string) string {
	return keyParticipantPrefix + id
}

// IsLedgerKey returns whether the provided store key belongs to a ledger
// record.
func IsLedgerKey(key string) bool {
	return strings.HasPrefix(key, keyLedgerPrefix)
}

// Save saves the ledger update to the store using a single atomic put.
//
// This function satisfies the ledger Backend interface.
func (d *ledgerDB) Save(u ledger.Update) error {
	log.Tracef("Save: %v proposals, %v participants",
		len(u.Proposals), len(u.Participants))

	blobs := make(map[string][]byte, 2+len(u.Proposals)+len(u.Participants))

	b, err := encode(dataDescriptorSummary, summaryRecord{
		ID:           u.Header.ID,
		Authority:    u.Header.Authority,
		Proposals:    u.Header.Proposals,
		Participants: u.Header.Participants,
		TotalWeight:  u.Header.TotalWeight,
	})
	if err != nil {
		return err
	}
	blobs[keySummary] = b

	for idx, p := range u.Proposals {
		b, err := encode(dataDescriptorProposal, proposalRecord{
			Name:      p.Name,
			VoteCount: p.VoteCount,
		})
		if err != nil {
			return err
		}
		blobs[keyProposal(idx)] = b
	}
	for id, p := range u.Participants {
		b, err := encode(dataDescriptorParticipant, participantRecord{
			Weight:     p.Weight,
			Voted:      p.Voted,
			Vote:       p.Vote,
			Delegate:   p.Delegate,
			Registered: p.Registered,
		})
		if err != nil {
			return err
		}
		blobs[keyParticipant(id)] = b
	}
	if u.Identities != nil {
		b, err := encode(dataDescriptorParticipants, participantsRecord{
			Identities: u.Identities,
		})
		if err != nil {
			return err
		}
		blobs[keyParticipantsIndex] = b
	}

	return d.kv.Put(blobs, d.encrypt)
}

// Load loads the full ledger state from the store. ledger.ErrNotInitialized
// is returned if the store does not contain a ledger.
//
// This function satisfies the ledger Backend interface.
func (d *ledgerDB) Load() (*ledger.State, error) {
	blobs, err := d.kv.Get([]string{keySummary, keyParticipantsIndex})
	if err != nil {
		return nil, err
	}
	b, ok := blobs[keySummary]
	if !ok {
		return nil, ledger.ErrNotInitialized
	}
	var sr summaryRecord
	err = decode(b, dataDescriptorSummary, &sr)
	if err != nil {
		return nil, err
	}
	var pr participantsRecord
	if b, ok := blobs[keyParticipantsIndex]; ok {
		err = decode(b, dataDescriptorParticipants, &pr)
		if err != nil {
			return nil, err
		}
	}

	// Get the proposals and participants
	keys := make([]string, 0, int(sr.Proposals)+len(pr.Identities))
	for i := uint32(0); i < sr.Proposals; i++ {
		keys = append(keys, keyProposal(i))
	}
	for _, id := range pr.Identities {
		keys = append(keys, keyParticipant(id))
	}
	blobs, err = d.kv.Get(keys)
	if err != nil {
		return nil, err
	}
	if len(blobs) != len(keys) {
		return nil, errors.Errorf("ledger records missing: got %v, "+
			"want %v", len(blobs), len(keys))
	}

	s := ledger.State{
		Header: ledger.Header{
			ID:           sr.ID,
			Authority:    sr.Authority,
			Proposals:    sr.Proposals,
			Participants: sr.Participants,
			TotalWeight:  sr.TotalWeight,
		},
		Proposals:    make([]ledger.Proposal, 0, sr.Proposals),
		Participants: make(map[string]ledger.Participant, len(pr.Identities)),
		Identities:   pr.Identities,
	}
	for i := uint32(0); i < sr.Proposals; i++ {
		var r proposalRecord
		err = decode(blobs[keyProposal(i)], dataDescriptorProposal, &r)
		if err != nil {
			return nil, errors.Wrapf(err, "proposal %v", i)
		}
		s.Proposals = append(s.Proposals, ledger.Proposal{
			Name:      r.Name,
			VoteCount: r.VoteCount,
		})
	}
	for _, id := range pr.Identities {
		var r participantRecord
		err = decode(blobs[keyParticipant(id)], dataDescriptorParticipant, &r)
		if err != nil {
			return nil, errors.Wrapf(err, "participant %v", id)
		}
		s.Participants[id] = ledger.Participant{
			Weight:     r.Weight,
			Voted:      r.Voted,
			Vote:       r.Vote,
			Delegate:   r.Delegate,
			Registered: r.Registered,
		}
	}

	log.Debugf("Loaded ledger %v", sr.ID)

	return &s, nil
}

// encode returns the blobified BlobEntry for the provided structure.
func encode(descriptor string, v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	hint, err := json.Marshal(
		store.DataDescriptor{
			Type:       store.DataTypeStructure,
			Descriptor: descriptor,
		})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return store.Blobify(store.NewBlobEntry(hint, data))
}

// decode decodes a blob that was created by encode into v. The data
// descriptor and the data digest are verified.
func decode(blob []byte, descriptor string, v interface{}) error {
	dd, data, err := Decode(blob)
	if err != nil {
		return err
	}
	if dd.Descriptor != descriptor {
		return errors.Errorf("unexpected data descriptor: got %v, want %v",
			dd.Descriptor, descriptor)
	}
	err = json.Unmarshal(data, v)
	if err != nil {
		return errors.Wrapf(err, "unmarshal %v", descriptor)
	}
	return nil
}

// Decode decodes a ledger blob and returns its data descriptor and its JSON
// payload. The payload digest is verified.
func Decode(blob []byte) (*store.DataDescriptor, []byte, error) {
	be, err := store.Deblob(blob)
	if err != nil {
		return nil, nil, err
	}

	// Decode and validate data hint
	b, err := base64.StdEncoding.DecodeString(be.DataHint)
	if err != nil {
		return nil, nil, errors.Errorf("decode DataHint: %v", err)
	}
	var dd store.DataDescriptor
	err = json.Unmarshal(b, &dd)
	if err != nil {
		return nil, nil, errors.Errorf("unmarshal DataHint: %v", err)
	}
	if dd.Type != store.DataTypeStructure {
		return nil, nil, errors.Errorf("invalid data type: got %v, want %v",
			dd.Type, store.DataTypeStructure)
	}

	// Decode data
	data, err := base64.StdEncoding.DecodeString(be.Data)
	if err != nil {
		return nil, nil, errors.Errorf("decode Data: %v", err)
	}
	digest, err := hex.DecodeString(be.Digest)
	if err != nil {
		return nil, nil, errors.Errorf("decode digest: %v", err)
	}
	if !bytes.Equal(util.Digest(data), digest) {
		return nil, nil, errors.Errorf("data is not coherent; got %x, "+
			"want %x", util.Digest(data), digest)
	}

	return &dd, data, nil
}
