// Copyright (c) 2021-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unittest contains helpers that are shared by the package tests.
package unittest

import (
	"reflect"
	"strings"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

// CheckConstMap verifies a map that is keyed by an integer code type, such as
// an error code to description map. The keys must be exactly the codes
// 0 through last-1.
func CheckConstMap(m interface{}, last uint64) error {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Map {
		return errors.Errorf("not a map: %T", m)
	}

	seen := make(map[uint64]bool, v.Len())
	for _, k := range v.MapKeys() {
		var code uint64
		switch k.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64:
			code = k.Uint()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			if k.Int() < 0 {
				return errors.Errorf("negative code %v", k.Int())
			}
			code = uint64(k.Int())
		default:
			return errors.Errorf("invalid key kind %v", k.Kind())
		}
		if code >= last {
			return errors.Errorf("code %v is not below %v", code, last)
		}
		seen[code] = true
	}
	for i := uint64(0); i < last; i++ {
		if !seen[i] {
			return errors.Errorf("code %v has no entry", i)
		}
	}

	return nil
}

// CompareStructFields returns an error unless the two structs have the same
// field types in the same order. Field names are not compared.
func CompareStructFields(a, b interface{}) error {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Struct || vb.Kind() != reflect.Struct {
		return errors.Errorf("want two structs, got %T and %T", a, b)
	}
	if va.NumField() != vb.NumField() {
		return errors.Errorf("%T has %v fields, %T has %v", a,
			va.NumField(), b, vb.NumField())
	}
	for i := 0; i < va.NumField(); i++ {
		ta, tb := va.Field(i).Type(), vb.Field(i).Type()
		if ta != tb {
			return errors.Errorf("field %v: %v != %v", i, ta, tb)
		}
	}
	return nil
}

// DeepEqual returns the differences between got and want, one per line. It
// returns an empty string when there are none.
func DeepEqual(got, want interface{}) string {
	diff := deep.Equal(got, want)
	if len(diff) == 0 {
		return ""
	}
	return "got != want:\n" + strings.Join(diff, "\n")
}
