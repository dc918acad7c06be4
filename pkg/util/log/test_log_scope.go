// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "strings"

// tShim is the part of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Log(args ...interface{})
}

// TestLogScope routes log output to the test's own log for the duration of
// a test. Use it as:
//
//	defer log.Scope(t).Close(t)
type TestLogScope struct {
	restore func()
}

// Scope redirects the log output to t.Log until Close is called.
func Scope(t tShim) *TestLogScope {
	return &TestLogScope{restore: SetOutput(testWriter{t: t})}
}

// Close restores the previous log output.
func (s *TestLogScope) Close(t tShim) {
	t.Helper()
	s.restore()
}

type testWriter struct {
	t tShim
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
