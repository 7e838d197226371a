// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package v1

import (
	"testing"

	"github.com/decred/dvote/unittest"
)

func TestMaps(t *testing.T) {
	err := unittest.CheckConstMap(ErrCodes, uint64(ErrCodeLast))
	if err != nil {
		t.Fatalf("ErrCodes: %v", err)
	}
}
