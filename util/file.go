// Copyright (c) 2017-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// FileExists returns whether anything exists at the provided path. A path
// that cannot be stat'd for any reason other than not existing is reported as
// existing so that callers do not overwrite it.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CleanAndExpandPath expands environment variables and a leading ~ or ~user
// in the path and returns the cleaned result. The home directory falls back
// to the working directory when the user cannot be looked up.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	name, rest := path[1:], ""
	if i := strings.IndexAny(name, `/\`); i != -1 {
		name, rest = name[:i], name[i:]
	}

	var (
		u   *user.User
		err error
	)
	if name == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(name)
	}
	home := "."
	if err == nil && u.HomeDir != "" {
		home = u.HomeDir
	}

	return filepath.Join(home, rest)
}
