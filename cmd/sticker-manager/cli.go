package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"sticker-manager/internal/models"
	"sticker-manager/internal/services"

	"github.com/spf13/cobra"
)

// withAlbum opens the database for a single command and closes it afterwards
func withAlbum(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *album) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openAlbum(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func collectionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "List, add and delete collections",
	}

	cmd.AddCommand(collectionsListCmd(opts))
	cmd.AddCommand(collectionsAddCmd(opts))
	cmd.AddCommand(collectionsDeleteCmd(opts))

	return cmd
}

func collectionsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collections with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				collections, err := a.service.Collections(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(collections) == 0 {
					fmt.Fprintln(out, "no collections")
					return nil
				}
				for _, collection := range collections {
					stats, err := a.service.Stats(ctx, collection.ID)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%d\t%s\t%d/%d collected\t%d duplicates\n",
						collection.ID, collection.Name, stats.Collected, stats.Total, stats.Duplicates)
				}
				return nil
			})
		},
	}
}

func collectionsAddCmd(opts *rootOptions) *cobra.Command {
	var (
		size        int
		description string
	)

	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Create a collection with stickers numbered 1..size",
		Example: `  sticker-manager collections add "World Cup 2026" --size 670`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				collection, err := a.service.CreateCollection(ctx, args[0], size, description)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created collection %d %q with %d stickers\n",
					collection.ID, collection.Name, collection.Size)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "Number of stickers in the album")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Free text description")

	return cmd
}

func collectionsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a collection and all of its stickers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				if err := a.service.DeleteCollection(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted collection %d\n", id)
				return nil
			})
		},
	}
}

func cardsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Inspect and update the stickers of a collection",
	}

	cmd.AddCommand(cardsListCmd(opts))
	cmd.AddCommand(cardsCollectCmd(opts))
	cmd.AddCommand(cardsAddCmd(opts))
	cmd.AddCommand(cardsDupCmd(opts))

	return cmd
}

func cardsListCmd(opts *rootOptions) *cobra.Command {
	var collectedOnly, missingOnly bool

	cmd := &cobra.Command{
		Use:   "list COLLECTION_ID",
		Short: "List the stickers of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			filter := models.DefaultCardFilter()
			if collectedOnly || missingOnly {
				filter = models.CardFilter{ShowCollected: collectedOnly, ShowMissing: missingOnly}
			}
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				_, cards, err := a.service.OpenCollection(ctx, id)
				if err != nil {
					return err
				}
				printCards(cmd.OutOrStdout(), filter.Apply(cards))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&collectedOnly, "collected", false, "Only show collected stickers")
	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only show missing stickers")
	cmd.MarkFlagsMutuallyExclusive("collected", "missing")

	return cmd
}

func cardsCollectCmd(opts *rootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "collect COLLECTION_ID NUMBER",
		Short: "Mark a sticker as collected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCard(cmd, opts, args, func(ctx context.Context, a *album, card models.Card) (models.Card, error) {
				return a.service.SetCollected(ctx, card, !undo)
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the sticker as missing again")

	return cmd
}

func cardsAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add COLLECTION_ID [NUMBER]",
		Short: "Add a sticker; without NUMBER it follows the highest one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				card, err := a.service.AddCard(ctx, id, label)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added sticker %d to collection %d\n", card.Number, id)
				return nil
			})
		},
	}
}

func cardsDupCmd(opts *rootOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "dup COLLECTION_ID NUMBER",
		Short: "Count one more duplicate of a sticker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCard(cmd, opts, args, func(ctx context.Context, a *album, card models.Card) (models.Card, error) {
				if remove {
					return a.service.RemoveDuplicate(ctx, card)
				}
				return a.service.AddDuplicate(ctx, card)
			})
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Count one duplicate less")

	return cmd
}

// withCard resolves COLLECTION_ID NUMBER, applies update and prints the result
func withCard(cmd *cobra.Command, opts *rootOptions, args []string,
	update func(ctx context.Context, a *album, card models.Card) (models.Card, error)) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	number, next, err := services.ParseCardLabel(args[1])
	if err != nil || next {
		return models.ErrInvalidCardNumber
	}

	return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
		card, err := a.service.CardByNumber(ctx, id, number)
		if err != nil {
			return err
		}
		card, err = update(ctx, a, card)
		if err != nil {
			return err
		}
		printCards(cmd.OutOrStdout(), []models.Card{card})
		return nil
	})
}

func exportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole album as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAlbum(cmd, opts, func(ctx context.Context, a *album) error {
				if out == "" || out == "-" {
					return a.service.Export(ctx, cmd.OutOrStdout())
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := a.service.Export(ctx, f); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func printCards(w io.Writer, cards []models.Card) {
	for _, card := range cards {
		mark := " "
		if card.Collected {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %d", mark, card.Number)
		if card.Duplicates > 0 {
			fmt.Fprintf(w, " (%d duplicates)", card.Duplicates)
		}
		fmt.Fprintln(w)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid collection id %q", arg)
	}
	return id, nil
}
