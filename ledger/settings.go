// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"strconv"

	v1 "github.com/decred/dvote/ledger/v1"
	"github.com/pkg/errors"
)

// settings contains the parsed ledger settings.
type settings struct {
	rejectZeroWeight      bool
	identityLengthMax     uint32
	proposalNameLengthMax uint32
}

// parseSettings returns the default settings with any of the provided
// settings applied on top.
func parseSettings(ss []Setting) (*settings, error) {
	s := settings{
		rejectZeroWeight:      v1.SettingRejectZeroWeight,
		identityLengthMax:     v1.SettingIdentityLengthMax,
		proposalNameLengthMax: v1.SettingProposalNameLengthMax,
	}

	// Override defaults with any passed in settings
	for _, v := range ss {
		switch v.Key {
		case v1.SettingKeyRejectZeroWeight:
			b, err := strconv.ParseBool(v.Value)
			if err != nil {
				return nil, errors.Errorf("ledger setting '%v': "+
					"ParseBool(%v): %v", v.Key, v.Value, err)
			}
			s.rejectZeroWeight = b

		case v1.SettingKeyIdentityLengthMax:
			u, err := parseLength(v)
			if err != nil {
				return nil, err
			}
			if u > v1.IdentityLengthLimit {
				return nil, errors.Errorf("ledger setting '%v' "+
					"cannot exceed %v", v.Key, v1.IdentityLengthLimit)
			}
			s.identityLengthMax = u

		case v1.SettingKeyProposalNameLengthMax:
			u, err := parseLength(v)
			if err != nil {
				return nil, err
			}
			s.proposalNameLengthMax = u

		default:
			return nil, errors.Errorf("invalid ledger setting '%v'", v.Key)
		}

		log.Infof("Ledger setting updated: %v %v", v.Key, v.Value)
	}

	return &s, nil
}

// parseLength parses a non-zero length setting.
func parseLength(s Setting) (uint32, error) {
	u, err := strconv.ParseUint(s.Value, 10, 32)
	if err != nil {
		return 0, errors.Errorf("ledger setting '%v': ParseUint(%v): %v",
			s.Key, s.Value, err)
	}
	if u == 0 {
		return 0, errors.Errorf("ledger setting '%v' must be greater "+
			"than zero", s.Key)
	}
	return uint32(u), nil
}
