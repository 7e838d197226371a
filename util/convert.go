// Copyright (c) 2017-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA256 of a byte slice.
func Digest(b []byte) []byte {
	h := sha256.New()
	h.Write(b)
	return h.Sum(nil)
}

// DigestHex returns the hex encoded SHA256 of a byte slice.
func DigestHex(b []byte) string {
	return hex.EncodeToString(Digest(b))
}
