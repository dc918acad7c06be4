// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/vecexpr/pkg/util/log"
	"github.com/stretchr/testify/require"
)

const inListExpr = `
op: decimal_in_list
input: 0
output: 1
values: ["1", "2.5"]
`

const filterExpr = `
op: filter_decimal_in_list
input: 0
values: ["2.5", "9"]
`

const decimalBatch = `
selected: [0, 2, 3]
columns:
- type: decimal
  values: ["1.00", "9.00", "2.50", "4"]
- type: long
`

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// runCLI runs the command line with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	setCLIDefaultsForTests()
	var out bytes.Buffer
	vecexprCmd.SetOut(&out)
	defer vecexprCmd.SetOut(nil)
	err := Run(args)
	return out.String(), err
}

func TestEval(t *testing.T) {
	defer log.Scope(t).Close(t)
	dir := t.TempDir()
	exprFile := writeFile(t, dir, "expr.yaml", inListExpr)
	batchFile := writeFile(t, dir, "batch.yaml", decimalBatch)

	out, err := runCLI(t, "eval", "--expr", exprFile, "--batch", batchFile)
	require.NoError(t, err)
	require.Equal(t, "row\t0:decimal\t1:long\n"+
		"0\t1.00\t1\n"+
		"2\t2.50\t1\n"+
		"3\t4\t0\n", out)

	out, err = runCLI(t, "eval", "--expr", exprFile, "--batch", batchFile, "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "row,0:decimal,1:long\n0,1.00,1\n2,2.50,1\n3,4,0\n", out)

	out, err = runCLI(t, "eval", "--expr", exprFile, "--batch", batchFile, "--format", "table")
	require.NoError(t, err)
	require.Contains(t, out, "2.50")
	require.Contains(t, out, "(3 rows)")
}

func TestEvalFilterRepeat(t *testing.T) {
	defer log.Scope(t).Close(t)
	dir := t.TempDir()
	exprFile := writeFile(t, dir, "expr.yaml", filterExpr)
	batchFile := writeFile(t, dir, "batch.yaml", decimalBatch)

	// Every repetition starts from the original selection.
	out, err := runCLI(t, "eval", "--expr", exprFile, "--batch", batchFile, "--repeat", "3", "-v", "2")
	require.NoError(t, err)
	require.Equal(t, "row\t0:decimal\t1:long\n2\t2.50\t0\n", out)
}

func TestEvalMetrics(t *testing.T) {
	defer log.Scope(t).Close(t)
	dir := t.TempDir()
	exprFile := writeFile(t, dir, "expr.yaml", inListExpr)
	batchFile := writeFile(t, dir, "batch.yaml", decimalBatch)

	out, err := runCLI(t, "eval", "--expr", exprFile, "--batch", batchFile, "--repeat", "4", "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, `vecexpr_batches_total{expr="decimal_in_list"} 4`)
	require.Contains(t, out, `vecexpr_rows_total{expr="decimal_in_list"} 12`)
	require.Contains(t, out, `vecexpr_evaluate_seconds_count{expr="decimal_in_list"} 4`)
}

func TestDescribe(t *testing.T) {
	defer log.Scope(t).Close(t)
	exprFile := writeFile(t, t.TempDir(), "expr.yaml", `
op: rtrim
input: 1
output: 2
children:
- op: ltrim
  input: 0
  output: 1
`)
	out, err := runCLI(t, "describe", "--expr", exprFile)
	require.NoError(t, err)
	require.Equal(t,
		"rtrim(col 1) -> col 2 PROJECTION(STRING_FAMILY COLUMN)\n"+
			"  ltrim(col 0) -> col 1 PROJECTION(STRING_FAMILY COLUMN)\n",
		out)
}

func TestEvalErrors(t *testing.T) {
	defer log.Scope(t).Close(t)
	dir := t.TempDir()
	batchFile := writeFile(t, dir, "batch.yaml", decimalBatch)

	_, err := runCLI(t, "eval", "--batch", batchFile)
	require.ErrorContains(t, err, "--expr is required")
	require.Equal(t, 1, exitCode(err))

	malformed := writeFile(t, dir, "malformed.yaml", `
op: decimal_in_list
input: 0
output: 1
values: ["1", "one"]
`)
	_, err = runCLI(t, "eval", "--expr", malformed, "--batch", batchFile)
	require.ErrorContains(t, err, `initializing expression: IN list value #2 "one"`)
	require.Equal(t, 1, exitCode(err))

	// Column 0 is not a bytes column.
	wrongColumn := writeFile(t, dir, "trim.yaml", "op: trim\ninput: 0\noutput: 1\n")
	_, err = runCLI(t, "eval", "--expr", wrongColumn, "--batch", batchFile)
	require.ErrorContains(t, err, "column 0 is of type decimal, expected bytes")
	require.Equal(t, 2, exitCode(err))

	_, err = runCLI(t, "eval", "--expr", wrongColumn, "--batch", batchFile, "--format", "xml")
	require.ErrorContains(t, err, "invalid table display format")
}
