// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"

	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

// cmd executes a command and decodes the reply into reply.
func cmd(t *testing.T, l *Ledger, caller, c string, payload, reply interface{}) {
	t.Helper()

	var p string
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		p = string(b)
	}
	r, err := l.Cmd(caller, c, p)
	if err != nil {
		t.Fatalf("%v: %v", c, err)
	}
	err = json.Unmarshal([]byte(r), reply)
	if err != nil {
		t.Fatalf("%v: %v", c, err)
	}
}

func TestCmd(t *testing.T) {
	l := newTestLedger(t)

	var apr v1.AddProposalReply
	cmd(t, l, authority, v1.CmdAddProposal, v1.AddProposal{Name: "sea"}, &apr)
	cmd(t, l, authority, v1.CmdAddProposal,
		v1.AddProposal{Name: "mountain"}, &apr)
	if apr.Index != 1 {
		t.Fatalf("got index %v, want 1", apr.Index)
	}

	var rr v1.RegisterReply
	for id, w := range map[string]uint64{"a": 1, "b": 2, "c": 5} {
		cmd(t, l, authority, v1.CmdRegister,
			v1.Register{Identity: id, Weight: w}, &rr)
		if rr.Participant.Identity != id || rr.Participant.Weight != w {
			t.Fatalf("unexpected participant %+v", rr.Participant)
		}
	}

	var dr v1.DelegateReply
	cmd(t, l, "b", v1.CmdDelegate, v1.Delegate{Target: "a"}, &dr)
	cmd(t, l, "c", v1.CmdDelegate, v1.Delegate{Target: "b"}, &dr)
	if dr.Terminal != "a" {
		t.Fatalf("got terminal %v, want a", dr.Terminal)
	}

	var vr v1.VoteReply
	cmd(t, l, "a", v1.CmdVote, v1.Vote{Index: 1}, &vr)
	want := v1.Proposal{Index: 1, Name: "mountain", VoteCount: 8}
	if diff := cmp.Diff(want, vr.Proposal); diff != "" {
		t.Fatalf("vote reply (-want +got):\n%v", diff)
	}

	var wr v1.WinnerReply
	cmd(t, l, "anyone", v1.CmdWinner, nil, &wr)
	if !wr.Winner || wr.Proposal != want {
		t.Fatalf("unexpected winner %+v", wr)
	}

	var pgr v1.ParticipantGetReply
	cmd(t, l, "anyone", v1.CmdParticipant,
		v1.ParticipantGet{Identity: "c"}, &pgr)
	wantC := v1.Participant{
		Identity:   "c",
		Voted:      true,
		Delegate:   "a",
		Registered: true,
	}
	if diff := cmp.Diff(wantC, pgr.Participant); diff != "" {
		t.Fatalf("participant (-want +got):\n%v", diff)
	}

	var prr v1.ProposalGetReply
	cmd(t, l, "anyone", v1.CmdProposal, v1.ProposalGet{Index: 0}, &prr)
	if prr.Proposal.Name != "sea" || prr.Proposal.VoteCount != 0 {
		t.Fatalf("unexpected proposal %+v", prr.Proposal)
	}

	var psr v1.ProposalsReply
	cmd(t, l, "anyone", v1.CmdProposals, nil, &psr)
	if len(psr.Proposals) != 2 || psr.Proposals[1] != want {
		t.Fatalf("unexpected proposals %+v", psr.Proposals)
	}

	var ptr v1.ParticipantsReply
	cmd(t, l, "anyone", v1.CmdParticipants, nil, &ptr)
	ids := make([]string, 0, len(ptr.Participants))
	for _, v := range ptr.Participants {
		ids = append(ids, v.Identity)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("participants (-want +got):\n%v", diff)
	}

	var pcr v1.ParticipantCountReply
	cmd(t, l, "anyone", v1.CmdParticipantCount, nil, &pcr)
	if pcr.Count != 3 {
		t.Fatalf("got count %v, want 3", pcr.Count)
	}

	var sr v1.SummaryGetReply
	cmd(t, l, "anyone", v1.CmdSummary, nil, &sr)
	wantS := v1.Summary{
		ID:            l.ID(),
		Authority:     authority,
		Proposals:     2,
		Participants:  3,
		TotalWeight:   8,
		TalliedWeight: 8,
		UnspentWeight: 0,
	}
	if diff := cmp.Diff(wantS, sr.Summary); diff != "" {
		t.Fatalf("summary (-want +got):\n%v", diff)
	}
}

func TestCmdErrors(t *testing.T) {
	l := newTestLedger(t, "sea")
	register(t, l, map[string]uint64{"a": 1})

	var tests = []struct {
		name     string
		caller   string
		cmd      string
		payload  string
		wantErr  error
		wantCode v1.ErrCode
	}{
		{
			"invalid command",
			authority,
			"tally",
			"",
			ErrCmdInvalid,
			0,
		},
		{
			"malformed payload",
			authority,
			v1.CmdAddProposal,
			"{",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"wrong payload type",
			"a",
			v1.CmdVote,
			`{"index":"one"}`,
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"empty vote payload",
			"a",
			v1.CmdVote,
			"",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"vote without index",
			"a",
			v1.CmdVote,
			"{}",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"null vote payload",
			"a",
			v1.CmdVote,
			"null",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"empty register payload",
			authority,
			v1.CmdRegister,
			"",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"register without weight",
			authority,
			v1.CmdRegister,
			`{"identity":"b"}`,
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"delegate without target",
			"a",
			v1.CmdDelegate,
			"{}",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"add proposal without name",
			authority,
			v1.CmdAddProposal,
			"{}",
			nil,
			v1.ErrCodeInvalidPayload,
		},
		{
			"unauthorized",
			"a",
			v1.CmdRegister,
			`{"identity":"b","weight":1}`,
			nil,
			v1.ErrCodeUnauthorized,
		},
		{
			"invalid proposal",
			"a",
			v1.CmdProposal,
			`{"index":3}`,
			nil,
			v1.ErrCodeInvalidProposal,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := takeSnapshot(l)
			_, err := l.Cmd(tc.caller, tc.cmd, tc.payload)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got err %v, want %v", err, tc.wantErr)
				}
			} else {
				requireUserErr(t, err, tc.wantCode)
			}
			if diff := cmp.Diff(before, takeSnapshot(l)); diff != "" {
				t.Fatalf("state changed (-before +after):\n%v", diff)
			}
		})
	}
}

// TestCmdConcurrentReplies verifies that the reply of a write command
// reflects that write and not a later write from another caller.
func TestCmdConcurrentReplies(t *testing.T) {
	const n = 50
	l := newTestLedger(t, "sea")

	// Every grant adds one to the same participant. Each reply must show
	// a different running total.
	weights := make([]uint64, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			r, err := l.Cmd(authority, v1.CmdRegister,
				`{"identity":"a","weight":1}`)
			if err != nil {
				return err
			}
			var rr v1.RegisterReply
			err = json.Unmarshal([]byte(r), &rr)
			if err != nil {
				return err
			}
			weights[i] = rr.Participant.Weight
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	// Every voter holds one unit of weight. Each reply must show a
	// different vote count.
	for i := 0; i < n; i++ {
		register(t, l, map[string]uint64{fmt.Sprintf("v%v", i): 1})
	}
	counts := make([]uint64, n)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			r, err := l.Cmd(fmt.Sprintf("v%v", i), v1.CmdVote,
				`{"index":0}`)
			if err != nil {
				return err
			}
			var vr v1.VoteReply
			err = json.Unmarshal([]byte(r), &vr)
			if err != nil {
				return err
			}
			counts[i] = vr.Proposal.VoteCount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	want := make([]uint64, n)
	for i := range want {
		want[i] = uint64(i + 1)
	}
	for name, got := range map[string][]uint64{
		"weights": weights,
		"counts":  counts,
	} {
		sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%v (-want +got):\n%v", name, diff)
		}
	}
}

func TestCmdWinnerNoProposals(t *testing.T) {
	l := newTestLedger(t)

	var wr v1.WinnerReply
	cmd(t, l, "anyone", v1.CmdWinner, nil, &wr)
	if wr.Winner {
		t.Fatalf("got winner %+v, want none", wr.Proposal)
	}
}
