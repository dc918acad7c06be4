// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexpr"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexprspec"
	"github.com/cockroachdb/vecexpr/pkg/util/log"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval --expr <file> --batch <file>",
	Short: "evaluate an expression over a batch",
	Long: `
Build the expression and the batch described by the given YAML files,
initialize the expression and evaluate it, then print the active rows of the
batch.
`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	exprData, err := readFile(cliCtx.exprFile, "expr")
	if err != nil {
		return err
	}
	batchData, err := readFile(cliCtx.batchFile, "batch")
	if err != nil {
		return err
	}
	exprSpec, err := colexprspec.ParseExpr(exprData)
	if err != nil {
		return err
	}
	batchSpec, err := colexprspec.ParseBatch(batchData)
	if err != nil {
		return err
	}
	expr, err := colexprspec.Build(exprSpec)
	if err != nil {
		return err
	}
	b, err := colexprspec.BuildBatch(batchSpec)
	if err != nil {
		return err
	}
	if cliCtx.repeat < 1 {
		return errors.Newf("--repeat must be positive, got %d", cliCtx.repeat)
	}

	var metrics *colexpr.Metrics
	registry := prometheus.NewRegistry()
	if cliCtx.metrics {
		metrics = colexpr.NewMetrics()
		if err := metrics.Register(registry); err != nil {
			return err
		}
		expr = colexpr.NewInstrumented(expr, metrics)
	}

	if err := expr.Init(ctx); err != nil {
		return errors.Wrap(err, "initializing expression")
	}
	log.VEventf(ctx, 1, "evaluating %s over %d rows", expr, b.Size)
	if b.Size == 0 {
		log.Warningf(ctx, "batch has no active rows")
	}

	// Filters narrow the selection, so every evaluation but the last starts
	// from a copy of the original one.
	sel := selectionOf(b)
	progress := log.Every(time.Second)
	start := time.Now()
	if err := colexecerror.CatchVectorizedRuntimeError(func() {
		for i := 0; i < cliCtx.repeat; i++ {
			sel.restore(b)
			expr.Evaluate(b)
			if progress.ShouldLog() {
				log.VEventf(ctx, 1, "evaluated %d of %d batches", i+1, cliCtx.repeat)
			}
		}
	}); err != nil {
		if colexecerror.IsContractViolation(err) {
			log.Errorf(ctx, "contract violation: %+v", err)
		}
		return errors.Wrap(err, "evaluating expression")
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	if err := printBatch(w, b, cliCtx.format); err != nil {
		return err
	}
	log.Infof(ctx, "evaluated %s rows in %s",
		humanize.Comma(int64(sel.size)*int64(cliCtx.repeat)), elapsed)
	if cliCtx.metrics {
		return printMetrics(w, registry)
	}
	return nil
}

// selection is a saved copy of the active rows of a batch.
type selection struct {
	size          int
	selectedInUse bool
	selected      []int
}

func selectionOf(b *coldata.Batch) selection {
	s := selection{size: b.Size, selectedInUse: b.SelectedInUse}
	if b.SelectedInUse {
		s.selected = append([]int(nil), b.Selected[:b.Size]...)
	}
	return s
}

func (s selection) restore(b *coldata.Batch) {
	if s.selectedInUse {
		b.SetSelection(s.selected)
	} else {
		b.ResetSelection(s.size)
	}
}

func printMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "printing metrics")
		}
	}
	return nil
}
