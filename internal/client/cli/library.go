package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/spf13/cobra"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid generation id %q", s)
	}
	return id, nil
}

func (a *App) listCmd(use, short, empty string, fetch func(ctx context.Context) ([]*models.Generation, error)) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			gens, err := fetch(ctx)
			if err != nil {
				return err
			}
			if len(gens) == 0 {
				a.printf("%s\n", empty)
				return nil
			}
			for _, g := range gens {
				if full {
					printGeneration(a.out, g)
					continue
				}
				a.printf("%s\n", summaryLine(g))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&full, "full", "f", false, "print full content")
	return cmd
}

func (a *App) historyCmd() *cobra.Command {
	return a.listCmd("history", "List your generations, oldest first", "No generations yet",
		func(ctx context.Context) ([]*models.Generation, error) { return a.client.History(ctx) })
}

func (a *App) savedCmd() *cobra.Command {
	return a.listCmd("saved", "List saved generations in the order they were saved", "No saved generations",
		func(ctx context.Context) ([]*models.Generation, error) { return a.client.Saved(ctx) })
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one of your generations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			g, err := a.client.Generation(ctx, id)
			if err != nil {
				return err
			}
			printGeneration(a.out, g)
			return nil
		},
	}
}

func (a *App) favoriteCmd(use, short, done string, call func(ctx context.Context, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			if err := call(ctx, id); err != nil {
				return err
			}
			a.printf(done+"\n", id)
			return nil
		},
	}
}

func (a *App) saveCmd() *cobra.Command {
	return a.favoriteCmd("save <id>", "Add a generation to saved", "Saved #%d",
		func(ctx context.Context, id int64) error { return a.client.Save(ctx, id) })
}

func (a *App) unsaveCmd() *cobra.Command {
	return a.favoriteCmd("unsave <id>", "Remove a generation from saved", "Removed #%d from saved",
		func(ctx context.Context, id int64) error { return a.client.Unsave(ctx, id) })
}
