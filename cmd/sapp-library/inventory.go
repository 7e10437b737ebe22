package main

import (
	"github.com/spf13/cobra"

	"github.com/mikietechie/sapp-library/app/features/command/restockbook"
	"github.com/mikietechie/sapp-library/app/features/command/retirebookitem"
	"github.com/mikietechie/sapp-library/app/features/query/genrebookstats"
	"github.com/mikietechie/sapp-library/app/features/query/listbookitems"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
	"github.com/mikietechie/sapp-library/lendingstore"
)

func bookItemViews(items []lendingstore.BookItem) []presenter.BookItemView {
	return presenter.List(items, presenter.BookItem)
}

func restockView(result restockbook.Result) presenter.RestockView {
	return presenter.Restock(result.Action, result.Items)
}

func newItemCommand(a *app) *cobra.Command {
	item := &cobra.Command{Use: "item", Short: "Inspect and retire book items"}

	var filter map[string]string

	list := &cobra.Command{
		Use:   "list",
		Short: "List book items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, listbookitems.NewQueryHandler(a.store), listbookitems.BuildQuery(filter), bookItemViews)
		},
	}
	list.Flags().StringToStringVar(&filter, "filter", nil, "key=value filters, e.g. book=<id>,available=true")

	var retiredOn, reason string

	retire := &cobra.Command{
		Use:   "retire ITEM_ID",
		Short: "Take a copy out of the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("item", args[0])
			if err != nil {
				return err
			}

			command := retirebookitem.BuildCommand(id, reason, a.actor, a.clock())
			if command.RetiredOn, err = parseOptionalDate("on", retiredOn); err != nil {
				return err
			}

			handler := retirebookitem.NewCommandHandler(
				a.store,
				retirebookitem.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, presenter.BookItem)
		},
	}
	retire.Flags().StringVar(&retiredOn, "on", "", "YYYY-MM-DD, defaults to today")
	retire.Flags().StringVar(&reason, "reason", "", "why the copy leaves the collection")

	item.AddCommand(list, retire)

	return item
}

func newRestockCommand(a *app) *cobra.Command {
	var (
		bookID, codes, prefix, condition, notes string
		numberOfBooks, from                     uint
	)

	restock := &cobra.Command{
		Use:   "restock",
		Short: "Add copies of a book, with listed codes or a generated sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := parseID("book", bookID)
			if err != nil {
				return err
			}

			command := restockbook.Command{
				BookID:        id,
				NumberOfBooks: numberOfBooks,
				Prefix:        prefix,
				Condition:     lendingstore.Condition(condition),
				Notes:         notes,
				Actor:         a.actor,
				OccurredAt:    a.clock(),
			}

			if cmd.Flags().Changed("codes") {
				command.Codes = &codes
			}

			if cmd.Flags().Changed("from") {
				command.GenerateCodesFrom = &from
			}

			handler := restockbook.NewCommandHandler(
				a.store,
				restockbook.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, restockView)
		},
	}
	restock.Flags().StringVar(&bookID, "book", "", "book id (required)")
	restock.Flags().UintVar(&numberOfBooks, "number", 0, "number of copies (required)")
	restock.Flags().StringVar(&codes, "codes", "", "comma separated codes, one per copy")
	restock.Flags().UintVar(&from, "from", 0, "first number of a generated code sequence")
	restock.Flags().StringVar(&prefix, "prefix", "", "code prefix, defaults to today's date")
	restock.Flags().StringVar(&condition, "condition", "", "condition of the new copies (required)")
	restock.Flags().StringVar(&notes, "notes", "", "")
	_ = restock.MarkFlagRequired("book")
	_ = restock.MarkFlagRequired("number")
	_ = restock.MarkFlagRequired("condition")

	return restock
}

func newStatsCommand(a *app) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Catalog statistics"}

	stats.AddCommand(&cobra.Command{
		Use:   "genres",
		Short: "Number of books per genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, genrebookstats.NewQueryHandler(a.store), genrebookstats.BuildQuery(),
				func(counts core.GenreBookStats) core.GenreBookStats { return counts })
		},
	})

	return stats
}
