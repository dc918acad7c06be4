// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the vecexpr command, a harness that builds
// vectorized expressions and test batches from their YAML form and
// evaluates them.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
	"github.com/cockroachdb/vecexpr/pkg/util/log"
	"github.com/spf13/cobra"
)

// Proxy to allow overrides in tests.
var stderr io.Writer = os.Stderr

var vecexprCmd = &cobra.Command{
	Use:   "vecexpr [command] (flags)",
	Short: "vectorized expression evaluation harness",
	Long: `
Build vectorized expressions and batches from their YAML specs and evaluate
them.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetVerbosity(cliCtx.verbosity)
	},
}

func init() {
	cobra.EnableCommandSorting = false

	vecexprCmd.AddCommand(
		evalCmd,
		describeCmd,
	)
}

// Main is the entry point for the vecexpr binary.
func Main() {
	if err := Run(os.Args[1:]); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	vecexprCmd.SetArgs(args)
	return vecexprCmd.Execute()
}

// exitCode distinguishes wiring bugs from bad input.
func exitCode(err error) int {
	if colexecerror.IsContractViolation(err) {
		return 2
	}
	return 1
}

// commandContext returns the context for cmd, tagged with the command name.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logtags.AddTag(ctx, "cmd", cmd.Name())
}

func readFile(name, what string) ([]byte, error) {
	if name == "" {
		return nil, errors.Newf("--%s is required", what)
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "reading %s", what)
}
