// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// batchRows returns the column names and the printable values of the active
// rows of b. The first column is the physical row index.
func batchRows(b *coldata.Batch) (cols []string, rows [][]string) {
	cols = make([]string, 0, b.Width()+1)
	cols = append(cols, "row")
	for i, vec := range b.Cols {
		cols = append(cols, fmt.Sprintf("%d:%s", i, vec.Type()))
	}
	for _, i := range b.ActiveRows() {
		row := make([]string, 0, len(cols))
		row = append(row, strconv.Itoa(i))
		for _, vec := range b.Cols {
			row = append(row, vec.PrettyValueAt(i))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

// printBatch writes the active rows of b to w in the given format.
func printBatch(w io.Writer, b *coldata.Batch, format tableDisplayFormat) error {
	cols, rows := batchRows(b)

	switch format {
	case tableDisplayTable:
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(cols)
		for _, row := range rows {
			table.Append(row)
		}
		table.Render()
		fmt.Fprintf(w, "(%s row%s)\n", humanize.Comma(int64(len(rows))), pluralize(len(rows)))

	case tableDisplayTSV, tableDisplayCSV:
		csvWriter := csv.NewWriter(w)
		if format == tableDisplayTSV {
			csvWriter.Comma = '\t'
		}
		_ = csvWriter.Write(cols)
		_ = csvWriter.WriteAll(rows)
		if err := csvWriter.Error(); err != nil {
			return errors.Wrap(err, "printing rows")
		}

	default:
		return errors.AssertionFailedf("unhandled display format %d", format)
	}
	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
