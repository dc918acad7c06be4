// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is a small severity-levelled logger. Messages are rendered with
// redact, so arguments that are not marked safe can be stripped from logs
// that leave the process, and they carry the logtags attached to the context.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/vecexpr/pkg/util/envutil"
)

// Severity is the severity level of a log entry.
type Severity int32

// The severities, in increasing order.
const (
	Severity_UNKNOWN Severity = iota
	Severity_INFO
	Severity_WARNING
	Severity_ERROR
)

var severityChars = [...]byte{'U', 'I', 'W', 'E'}

func (s Severity) String() string {
	switch s {
	case Severity_INFO:
		return "INFO"
	case Severity_WARNING:
		return "WARNING"
	case Severity_ERROR:
		return "ERROR"
	}
	return "UNKNOWN"
}

var logging struct {
	verbosity int32
	mu        struct {
		sync.Mutex
		out        io.Writer
		redactable bool
	}
}

func init() {
	logging.verbosity = int32(envutil.EnvOrDefaultInt("COCKROACH_LOG_VERBOSITY", 0))
	logging.mu.out = os.Stderr
	logging.mu.redactable = envutil.EnvOrDefaultBool("COCKROACH_REDACTABLE_LOGS", false)
}

// SetOutput redirects all log output to w. It returns a function that
// restores the previous output.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	old := logging.mu.out
	logging.mu.out = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.out = old
	}
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(redactable bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.redactable = redactable
}

// SetVerbosity sets the level up to which V returns true. It returns a
// function that restores the previous level.
func SetVerbosity(level int32) (restore func()) {
	old := atomic.SwapInt32(&logging.verbosity, level)
	return func() { atomic.StoreInt32(&logging.verbosity, old) }
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return atomic.LoadInt32(&logging.verbosity) >= level
}

// Infof logs to the INFO log.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_INFO, format, args)
}

// Warningf logs to the WARNING and INFO logs.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_WARNING, format, args)
}

// Errorf logs to the ERROR, WARNING, and INFO logs.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_ERROR, format, args)
}

// VEventf logs an INFO message if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		logDepth(ctx, 1, Severity_INFO, format, args)
	}
}

// logDepth formats and writes one entry. depth is the number of stack frames
// between the caller of the public function and logDepth.
func logDepth(ctx context.Context, depth int, sev Severity, format string, args []interface{}) {
	file, line := "???", 1
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = filepath.Base(f), l
	}
	msg := redact.Sprintf(format, args...)

	var buf strings.Builder
	now := time.Now()
	buf.WriteByte(severityChars[sev])
	buf.WriteString(now.Format("060102 15:04:05.000000"))
	fmt.Fprintf(&buf, " %s:%d ", file, line)
	formatTags(ctx, &buf)

	logging.mu.Lock()
	defer logging.mu.Unlock()
	if logging.mu.redactable {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteByte('\n')
	}
	_, _ = io.WriteString(logging.mu.out, buf.String())
}

// formatTags appends the context's logtags, in brackets, to buf.
func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	buf.WriteByte('[')
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.ValueStr(); v != "" {
			buf.WriteByte('=')
			buf.WriteString(v)
		}
	}
	buf.WriteString("] ")
}
