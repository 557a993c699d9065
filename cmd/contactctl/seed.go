package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/contactbook/internal/seed"
)

func seedCmd(g *globals) *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load tags, contacts and organizations from a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "fixture ok: %d tag(s), %d contact(s), %d organization(s)\n",
					len(f.Tags), len(f.Contacts), len(f.Organizations))
				return nil
			}

			a, err := g.openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := seed.Apply(cmd.Context(), f, seed.Services{
				Tags:          a.Tags,
				Contacts:      a.Contacts,
				Organizations: a.Organizations,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d tag(s), %d contact(s), %d organization(s)\n",
				res.Tags, res.Contacts, res.Organizations)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the YAML fixture")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the fixture without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
