// Copyright (c) 2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/dvote/ledger"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig([]string{"--appdir=" + dir})
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		name string
		got  string
		want string
	}{
		{"datadir", cfg.DataDir, filepath.Join(dir, dataDirname)},
		{"logdir", cfg.LogDir, filepath.Join(dir, logDirname)},
		{"configfile", cfg.ConfigFile, filepath.Join(dir, configFilename)},
		{"db", cfg.DB, dbTypeLocalDB},
		{"dbhost", cfg.DBHost, dbHost},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
	if _, err := os.Stat(cfg.DataDir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	conf := "[Application Options]\n" +
		"caller=alice\n" +
		"dbname=fromfile\n"
	err := os.WriteFile(filepath.Join(dir, configFilename), []byte(conf), 0600)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig([]string{"--appdir=" + dir, "--caller=bob"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Caller != "bob" {
		t.Errorf("got caller %v, want bob", cfg.Caller)
	}
	if cfg.DBName != "fromfile" {
		t.Errorf("got dbname %v, want fromfile", cfg.DBName)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	var tests = []struct {
		name string
		args []string
	}{
		{"invalid db", []string{"--db=postgres"}},
		{"invalid log level", []string{"--loglevel=loud"}},
		{"invalid subsystem", []string{"--loglevel=FOO=debug"}},
		{"invalid ledger setting", []string{"--ledgersetting=nocomma"}},
		{"mysql without password", []string{"--db=mysql"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(envDBPass, "")
			args := append([]string{"--appdir=" + t.TempDir()}, tc.args...)
			_, err := loadConfig(args)
			if err == nil {
				t.Fatalf("got nil error, want error")
			}
		})
	}
}

func TestLoadConfigMySQL(t *testing.T) {
	t.Setenv(envDBPass, "secret")
	cfg, err := loadConfig([]string{"--appdir=" + t.TempDir(), "--db=mysql"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.dbPass != "secret" {
		t.Fatalf("got password %v, want secret", cfg.dbPass)
	}
}

func TestParseLedgerSettings(t *testing.T) {
	var tests = []struct {
		name     string
		settings []string
		want     []ledger.Setting
		wantErr  bool
	}{
		{"none", nil, []ledger.Setting{}, false},
		{
			"multiple",
			[]string{"rejectzeroweight,true", " identitylengthmax , 12 "},
			[]ledger.Setting{
				{Key: "rejectzeroweight", Value: "true"},
				{Key: "identitylengthmax", Value: "12"},
			},
			false,
		},
		{
			"value with comma",
			[]string{"key,a,b"},
			[]ledger.Setting{{Key: "key", Value: "a,b"}},
			false,
		},
		{"no comma", []string{"rejectzeroweight"}, nil, true},
		{"no key", []string{",true"}, nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLedgerSettings(tc.settings)
			switch {
			case tc.wantErr && err == nil:
				t.Fatalf("got nil error, want error")
			case !tc.wantErr && err != nil:
				t.Fatalf("got error %v, want nil", err)
			case tc.wantErr:
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("settings (-want +got):\n%v", diff)
			}
		})
	}
}
