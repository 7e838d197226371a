// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	v1 "github.com/decred/dvote/ledger/v1"
)

// Cmd executes a ledger command on behalf of the caller. The payload and the
// returned reply are the JSON encoded v1 types for the command. Read commands
// treat an empty payload as an empty JSON object. Write commands require a
// payload that sets every field of the command.
func (l *Ledger) Cmd(caller, cmd, payload string) (string, error) {
	log.Tracef("Cmd: %v %v %v", caller, cmd, payload)

	switch cmd {
	case v1.CmdAddProposal:
		return l.cmdAddProposal(caller, payload)
	case v1.CmdRegister:
		return l.cmdRegister(caller, payload)
	case v1.CmdDelegate:
		return l.cmdDelegate(caller, payload)
	case v1.CmdVote:
		return l.cmdVote(caller, payload)
	case v1.CmdWinner:
		return l.cmdWinner()
	case v1.CmdParticipant:
		return l.cmdParticipant(payload)
	case v1.CmdProposal:
		return l.cmdProposal(payload)
	case v1.CmdProposals:
		return l.cmdProposals()
	case v1.CmdParticipants:
		return l.cmdParticipants()
	case v1.CmdParticipantCount:
		return l.cmdParticipantCount()
	case v1.CmdSummary:
		return l.cmdSummary()
	}

	return "", ErrCmdInvalid
}

// decodePayload decodes the JSON payload into v. A payload that cannot be
// decoded returns an InvalidPayload user error.
func decodePayload(payload string, v interface{}) error {
	if payload == "" {
		payload = "{}"
	}
	err := json.Unmarshal([]byte(payload), v)
	if err != nil {
		return userErr(v1.ErrCodeInvalidPayload, "%v", err)
	}
	return nil
}

// decodeWritePayload decodes the payload of a write command into v. The
// payload must contain each of the provided fields so that a missing field is
// never mistaken for its zero value.
func decodeWritePayload(payload string, v interface{}, fields ...string) error {
	var m map[string]json.RawMessage
	err := json.Unmarshal([]byte(payload), &m)
	if err != nil {
		return userErr(v1.ErrCodeInvalidPayload, "%v", err)
	}
	for _, f := range fields {
		if _, ok := m[f]; !ok {
			return userErr(v1.ErrCodeInvalidPayload,
				"missing field '%v'", f)
		}
	}
	return decodePayload(payload, v)
}

// encodeReply returns the JSON encoded reply.
func encodeReply(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (l *Ledger) cmdAddProposal(caller, payload string) (string, error) {
	var ap v1.AddProposal
	err := decodeWritePayload(payload, &ap, "name")
	if err != nil {
		return "", err
	}
	idx, err := l.AddProposal(caller, ap.Name)
	if err != nil {
		return "", err
	}
	return encodeReply(v1.AddProposalReply{
		Index: idx,
	})
}

func (l *Ledger) cmdRegister(caller, payload string) (string, error) {
	var r v1.Register
	err := decodeWritePayload(payload, &r, "identity", "weight")
	if err != nil {
		return "", err
	}

	l.mtx.Lock()
	p, err := l.registerParticipant(caller, r.Identity, r.Weight)
	l.mtx.Unlock()
	if err != nil {
		return "", err
	}

	return encodeReply(v1.RegisterReply{
		Participant: convertParticipantToV1(r.Identity, *p),
	})
}

func (l *Ledger) cmdDelegate(caller, payload string) (string, error) {
	var d v1.Delegate
	err := decodeWritePayload(payload, &d, "target")
	if err != nil {
		return "", err
	}
	terminal, err := l.Delegate(caller, d.Target)
	if err != nil {
		return "", err
	}
	return encodeReply(v1.DelegateReply{
		Terminal: terminal,
	})
}

func (l *Ledger) cmdVote(caller, payload string) (string, error) {
	var v v1.Vote
	err := decodeWritePayload(payload, &v, "index")
	if err != nil {
		return "", err
	}

	l.mtx.Lock()
	p, err := l.vote(caller, v.Index)
	l.mtx.Unlock()
	if err != nil {
		return "", err
	}

	return encodeReply(v1.VoteReply{
		Proposal: convertProposalToV1(v.Index, *p),
	})
}

func (l *Ledger) cmdWinner() (string, error) {
	l.mtx.RLock()
	var wr v1.WinnerReply
	idx, ok := l.winningProposal()
	if ok {
		wr.Winner = true
		wr.Proposal = convertProposalToV1(idx, l.proposals[idx])
	}
	l.mtx.RUnlock()

	return encodeReply(wr)
}

func (l *Ledger) cmdParticipant(payload string) (string, error) {
	var pg v1.ParticipantGet
	err := decodePayload(payload, &pg)
	if err != nil {
		return "", err
	}
	return encodeReply(v1.ParticipantGetReply{
		Participant: convertParticipantToV1(pg.Identity,
			l.Participant(pg.Identity)),
	})
}

func (l *Ledger) cmdProposal(payload string) (string, error) {
	var pg v1.ProposalGet
	err := decodePayload(payload, &pg)
	if err != nil {
		return "", err
	}
	p, err := l.Proposal(pg.Index)
	if err != nil {
		return "", err
	}
	return encodeReply(v1.ProposalGetReply{
		Proposal: convertProposalToV1(pg.Index, *p),
	})
}

func (l *Ledger) cmdProposals() (string, error) {
	ps := l.Proposals()
	proposals := make([]v1.Proposal, 0, len(ps))
	for i, v := range ps {
		proposals = append(proposals, convertProposalToV1(uint32(i), v))
	}
	return encodeReply(v1.ProposalsReply{
		Proposals: proposals,
	})
}

func (l *Ledger) cmdParticipants() (string, error) {
	l.mtx.RLock()
	ids := l.sortedIdentities()
	participants := make([]v1.Participant, 0, len(ids))
	for _, id := range ids {
		participants = append(participants,
			convertParticipantToV1(id, l.participants[id]))
	}
	l.mtx.RUnlock()

	return encodeReply(v1.ParticipantsReply{
		Participants: participants,
	})
}

func (l *Ledger) cmdParticipantCount() (string, error) {
	return encodeReply(v1.ParticipantCountReply{
		Count: l.ParticipantCount(),
	})
}

func (l *Ledger) cmdSummary() (string, error) {
	return encodeReply(v1.SummaryGetReply{
		Summary: l.Summary(),
	})
}

func convertParticipantToV1(id string, p Participant) v1.Participant {
	return v1.Participant{
		Identity:   id,
		Weight:     p.Weight,
		Voted:      p.Voted,
		Vote:       p.Vote,
		Delegate:   p.Delegate,
		Registered: p.Registered,
	}
}

func convertProposalToV1(idx uint32, p Proposal) v1.Proposal {
	return v1.Proposal{
		Index:     idx,
		Name:      p.Name,
		VoteCount: p.VoteCount,
	}
}
