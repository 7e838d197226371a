// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerdb

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decred/dvote/ledger"
	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/decred/dvote/store"
	"github.com/decred/dvote/store/localdb"
	"github.com/decred/dvote/unittest"
)

const (
	authority = "chairperson"
)

// openTestStore opens a localdb store in the provided directory.
func openTestStore(t *testing.T, dir string) store.BlobKV {
	t.Helper()

	kv, err := localdb.New(filepath.Join(dir, "app"),
		filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}
	return kv
}

func TestRecordFields(t *testing.T) {
	var tests = []struct {
		name    string
		record  interface{}
		ledgerT interface{}
	}{
		{"summary", summaryRecord{}, ledger.Header{}},
		{"proposal", proposalRecord{}, ledger.Proposal{}},
		{"participant", participantRecord{}, ledger.Participant{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := unittest.CompareStructFields(tc.record, tc.ledgerT)
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestLoadNotInitialized(t *testing.T) {
	kv := openTestStore(t, t.TempDir())
	defer kv.Close()

	_, err := New(kv, false).Load()
	if !errors.Is(err, ledger.ErrNotInitialized) {
		t.Fatalf("got err %v, want %v", err, ledger.ErrNotInitialized)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, encrypt := range []bool{false, true} {
		name := "cleartext"
		if encrypt {
			name = "encrypted"
		}
		t.Run(name, func(t *testing.T) {
			testRoundTrip(t, encrypt)
		})
	}
}

func testRoundTrip(t *testing.T, encrypt bool) {
	dir := t.TempDir()

	kv := openTestStore(t, dir)
	l, err := ledger.New(authority, New(kv, encrypt), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []string{"sea", "mountain"} {
		_, err := l.AddProposal(authority, v)
		if err != nil {
			t.Fatal(err)
		}
	}
	for id, w := range map[string]uint64{"a": 1, "b": 2, "c": 5, "d": 3} {
		err := l.RegisterParticipant(authority, id, w)
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err = l.Delegate("b", "a")
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.Delegate("c", "b")
	if err != nil {
		t.Fatal(err)
	}
	err = l.Vote("a", 1)
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.Delegate("d", "newcomer")
	if err != nil {
		t.Fatal(err)
	}
	kv.Close()

	// Reopen the store and the ledger
	kv = openTestStore(t, dir)
	defer kv.Close()
	reopened, err := ledger.Open(New(kv, encrypt), nil)
	if err != nil {
		t.Fatal(err)
	}

	if diff := unittest.DeepEqual(reopened.Summary(), l.Summary()); diff != "" {
		t.Fatalf("summary: %v", diff)
	}
	if diff := unittest.DeepEqual(reopened.Proposals(), l.Proposals()); diff != "" {
		t.Fatalf("proposals: %v", diff)
	}
	if diff := unittest.DeepEqual(reopened.Participants(),
		l.Participants()); diff != "" {
		t.Fatalf("participants: %v", diff)
	}
	p, err := reopened.Proposal(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.VoteCount != 8 {
		t.Fatalf("got vote count %v, want 8", p.VoteCount)
	}
	if w := reopened.Participant("newcomer").Weight; w != 3 {
		t.Fatalf("got weight %v, want 3", w)
	}
}

func TestSaveFailure(t *testing.T) {
	kv := openTestStore(t, t.TempDir())
	l, err := ledger.New(authority, New(kv, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	kv.Close()

	_, err = l.AddProposal(authority, "sea")
	if !errors.Is(err, store.ErrShutdown) {
		t.Fatalf("got err %v, want %v", err, store.ErrShutdown)
	}
	if l.ProposalCount() != 0 {
		t.Fatalf("failed save was applied")
	}
}

func TestLoadMissingRecord(t *testing.T) {
	kv := openTestStore(t, t.TempDir())
	defer kv.Close()

	l, err := ledger.New(authority, New(kv, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.AddProposal(authority, "sea")
	if err != nil {
		t.Fatal(err)
	}
	err = kv.Del([]string{keyProposal(0)})
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(kv, false).Load()
	if err == nil {
		t.Fatalf("got nil error, want error")
	}
}

func TestDecode(t *testing.T) {
	b, err := encode(dataDescriptorProposal, proposalRecord{Name: "sea"})
	if err != nil {
		t.Fatal(err)
	}
	dd, data, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if dd.Descriptor != dataDescriptorProposal {
		t.Fatalf("got descriptor %v, want %v", dd.Descriptor,
			dataDescriptorProposal)
	}
	var pr proposalRecord
	err = json.Unmarshal(data, &pr)
	if err != nil {
		t.Fatal(err)
	}
	if pr.Name != "sea" {
		t.Fatalf("got name %v, want sea", pr.Name)
	}

	// Wrong descriptor
	var sr summaryRecord
	err = decode(b, dataDescriptorSummary, &sr)
	if err == nil {
		t.Fatalf("got nil error, want error")
	}

	// Incoherent digest
	be, err := store.Deblob(b)
	if err != nil {
		t.Fatal(err)
	}
	be.Digest = be.Digest[2:] + "00"
	b, err = store.Blobify(*be)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Decode(b)
	if err == nil {
		t.Fatalf("got nil error, want error")
	}
}

func TestParticipantKeyLength(t *testing.T) {
	id := strings.Repeat("a", int(v1.IdentityLengthLimit))
	k := keyParticipant(id)
	if len(k) != store.KeyLengthMax {
		t.Fatalf("got key length %v, want %v", len(k), store.KeyLengthMax)
	}
}

func TestIsLedgerKey(t *testing.T) {
	var tests = []struct {
		key  string
		want bool
	}{
		{keySummary, true},
		{keyProposal(3), true},
		{keyParticipant("a"), true},
		{keyParticipantsIndex, true},
		{"encryptionkey", false},
	}
	for _, tc := range tests {
		if got := IsLedgerKey(tc.key); got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.key, got, tc.want)
		}
	}
}
