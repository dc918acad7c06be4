// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/vecexpr/pkg/sql/colexpr"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexprspec"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe --expr <file>",
	Short: "print an expression tree and its descriptors",
	Long: `
Build the expression described by the given YAML file and print it, one
expression per line, together with the descriptor the planner would match it
against. The expression is not initialized.
`,
	Args: cobra.NoArgs,
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	data, err := readFile(cliCtx.exprFile, "expr")
	if err != nil {
		return err
	}
	spec, err := colexprspec.ParseExpr(data)
	if err != nil {
		return err
	}
	expr, err := colexprspec.Build(spec)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), colexpr.Explain(expr))
	return nil
}
