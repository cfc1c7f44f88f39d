package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the titles of all entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			core, err := newCore(cfg)
			if err != nil {
				return err
			}
			titles, err := core.ListEntries()
			if err != nil {
				return err
			}
			for _, title := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	}
}
