package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func recountCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "recount",
		Short: "Recompute occurrence counts for every spelling and entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if workers <= 0 {
				workers = e.cfg.Lexicon.RecountWorkers
			}
			res, err := e.services().Lexicon.Recount(cmd.Context(), workers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "counted %d spellings, %d changed in %s\n",
				res.Spellings, res.Changed, res.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "parallel counting workers (default from config)")
	return cmd
}
