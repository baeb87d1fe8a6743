package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yadascribe/scribe-backend/internal/importer"
)

func importCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load glossary spreadsheets (.csv or .xlsx)",
	}
	cmd.PersistentFlags().StringVar(&sheet, "sheet", "", "worksheet name for .xlsx files (default first sheet)")

	cmd.AddCommand(importSubCmd("words", "Insert lexicon entries keeping their ids", &sheet,
		func(im *importer.Importer) importFunc { return im.ImportWords }))
	cmd.AddCommand(importSubCmd("spellings", "Replace the spelling lists of entries", &sheet,
		func(im *importer.Importer) importFunc { return im.ImportSpellings }))

	return cmd
}

type importFunc func(ctx context.Context, rows [][]string) (importer.Result, error)

func importSubCmd(name, short string, sheet *string, pick func(*importer.Importer) importFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := importer.ReadTable(args[0], *sheet)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := pick(e.services().Importer)(cmd.Context(), rows)
			printResult(cmd.OutOrStdout(), res)
			return err
		},
	}
}

func printResult(w io.Writer, res importer.Result) {
	for _, rowErr := range res.Errors {
		fmt.Fprintf(w, "skipped %s\n", rowErr.Error())
	}
	fmt.Fprintf(w, "%d rows read, %d imported, %d skipped\n", res.Rows, res.Imported, len(res.Errors))
}
