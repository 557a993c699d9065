package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/contactbook/internal/app"
)

func tagCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Attach tags to a contact or organization",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "contact <contact-id> <tag-id>...",
		Short: "Attach tags to a contact",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd, g, args, func(ctx context.Context, a *app.App, id uuid.UUID, tagIDs []uuid.UUID) ([]string, error) {
				c, err := a.Contacts.AddTags(ctx, id, tagIDs)
				if err != nil {
					return nil, err
				}
				return c.Tags().Names(), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "organization <organization-id> <tag-id>...",
		Short: "Attach tags to an organization",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTag(cmd, g, args, func(ctx context.Context, a *app.App, id uuid.UUID, tagIDs []uuid.UUID) ([]string, error) {
				o, err := a.Organizations.AddTags(ctx, id, tagIDs)
				if err != nil {
					return nil, err
				}
				return o.Tags().Names(), nil
			})
		},
	})

	return cmd
}

// addFunc attaches tagIDs to the entity id and returns its tag names afterwards.
type addFunc func(ctx context.Context, a *app.App, id uuid.UUID, tagIDs []uuid.UUID) ([]string, error)

func runTag(cmd *cobra.Command, g *globals, args []string, add addFunc) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	a, err := g.openApp(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := add(cmd.Context(), a, ids[0], ids[1:])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ids[0], strings.Join(names, ", "))
	return nil
}

func parseIDs(args []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(args))
	for i, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not a UUID", i+1, arg)
		}
		ids[i] = id
	}
	return ids, nil
}
