package main

import (
	"github.com/spf13/cobra"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/tui"
)

func newFormCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive semester form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remote {
				c, err := client.New(opts.endpoint, opts.timeout)
				if err != nil {
					return err
				}
				return tui.Run(tui.NewForm(curriculum.Catalog{}, tui.WithRemote(c, opts.timeout)))
			}
			catalog, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(tui.NewForm(catalog))
		},
	}
}
