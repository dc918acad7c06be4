// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// tableDisplayFormat identifies how rows are printed.
type tableDisplayFormat int

const (
	tableDisplayTSV tableDisplayFormat = iota
	tableDisplayCSV
	tableDisplayTable
)

var _ pflag.Value = new(tableDisplayFormat)

// Type implements the pflag.Value interface.
func (f *tableDisplayFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *tableDisplayFormat) String() string {
	switch *f {
	case tableDisplayTSV:
		return "tsv"
	case tableDisplayCSV:
		return "csv"
	case tableDisplayTable:
		return "table"
	}
	return ""
}

// Set implements the pflag.Value interface.
func (f *tableDisplayFormat) Set(s string) error {
	switch s {
	case "tsv":
		*f = tableDisplayTSV
	case "csv":
		*f = tableDisplayCSV
	case "table":
		*f = tableDisplayTable
	default:
		return errors.Newf("invalid table display format: %s (possible values: tsv, csv, table)", s)
	}
	return nil
}

// cliContext holds the flag values of the commands.
type cliContext struct {
	exprFile  string
	batchFile string
	repeat    int
	metrics   bool
	verbosity int32
	format    tableDisplayFormat
}

var cliCtx cliContext

// isInteractive indicates whether stdout refers to a terminal.
var isInteractive = isatty.IsTerminal(os.Stdout.Fd())

func defaultCLIContext(interactive bool) cliContext {
	ctx := cliContext{repeat: 1, format: tableDisplayTSV}
	if interactive {
		ctx.format = tableDisplayTable
	}
	return ctx
}

func setCLIDefaultsForTests() {
	cliCtx = defaultCLIContext(false /* interactive */)
}

func init() {
	cliCtx = defaultCLIContext(isInteractive)

	for _, cmd := range []*pflag.FlagSet{evalCmd.Flags(), describeCmd.Flags()} {
		cmd.StringVar(&cliCtx.exprFile, "expr", "", "YAML file with the expression spec")
	}

	f := evalCmd.Flags()
	f.StringVar(&cliCtx.batchFile, "batch", "", "YAML file with the batch spec")
	f.IntVar(&cliCtx.repeat, "repeat", cliCtx.repeat, "number of times to evaluate the batch")
	f.BoolVar(&cliCtx.metrics, "metrics", false, "print evaluation metrics after the rows")
	f.Var(&cliCtx.format, "format", "how to print rows: tsv, csv or table")

	vecexprCmd.PersistentFlags().Int32VarP(&cliCtx.verbosity, "verbosity", "v", 0, "log verbosity")
}
