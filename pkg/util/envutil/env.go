// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package envutil reads the COCKROACH_ environment variables that tune the
// vectorized engine.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const envPrefix = "COCKROACH_"

func checkVarName(name string) {
	if !strings.HasPrefix(name, envPrefix) {
		panic(errors.AssertionFailedf("invalid env var name %q: must start with %s", name, envPrefix))
	}
	for _, c := range name {
		if !(c == '_' || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			panic(errors.AssertionFailedf("invalid env var name %q", name))
		}
	}
}

// EnvString returns the value set by the specified environment variable. The
// second return value is false if the variable is not set.
func EnvString(name string) (string, bool) {
	checkVarName(name)
	return os.LookupEnv(name)
}

// EnvOrDefaultInt returns the value set by the specified environment variable
// if it parses as an integer, otherwise the default value.
func EnvOrDefaultInt(name string, value int) int {
	if str, present := EnvString(name); present {
		v, err := strconv.ParseInt(strings.TrimSpace(str), 0, 64)
		if err != nil {
			panic(errors.Wrapf(err, "error parsing %s", name))
		}
		return int(v)
	}
	return value
}

// EnvOrDefaultBool returns the value set by the specified environment variable
// if it parses as a boolean, otherwise the default value.
func EnvOrDefaultBool(name string, value bool) bool {
	if str, present := EnvString(name); present {
		v, err := strconv.ParseBool(strings.TrimSpace(str))
		if err != nil {
			panic(errors.Wrapf(err, "error parsing %s", name))
		}
		return v
	}
	return value
}
