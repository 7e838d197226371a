// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"encoding/base64"
	"testing"

	"github.com/decred/dvote/util"
)

func TestBlobify(t *testing.T) {
	var (
		hint = []byte(`{"type":"struct","descriptor":"test"}`)
		data = []byte(`{"name":"mountain"}`)
	)
	be := NewBlobEntry(hint, data)
	if be.Digest != util.DigestHex(data) {
		t.Fatalf("got digest %v, want %v", be.Digest, util.DigestHex(data))
	}

	b, err := Blobify(be)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Deblob(b)
	if err != nil {
		t.Fatal(err)
	}
	if *got != be {
		t.Fatalf("got %+v, want %+v", *got, be)
	}

	d, err := base64.StdEncoding.DecodeString(got.Data)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != string(data) {
		t.Errorf("got data %s, want %s", d, data)
	}
}

func TestDeblobInvalid(t *testing.T) {
	_, err := Deblob([]byte("not a gzipped blob"))
	if err == nil {
		t.Errorf("got nil error, want error")
	}
}
