package main

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
	"github.com/mikietechie/sapp-library/lendingstore"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store.CreateSchema(cmd.Context()); err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]string{"status": "migrated"})
		},
	}
}

func newPolicyCommand(a *app) *cobra.Command {
	policy := &cobra.Command{Use: "policy", Short: "Show or change the lease and booking durations"}

	var leaseDays, bookingDays uint

	set := &cobra.Command{
		Use:   "set",
		Short: "Store the default lease and booking durations in days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := a.store.LoadPolicySettings(cmd.Context())
			if err != nil && !errors.Is(err, lendingstore.ErrPolicySettingsNotFound) {
				return err
			}

			settings.DefaultLeaseDays, settings.DefaultBookingDays = leaseDays, bookingDays

			saved, err := a.store.SavePolicySettings(cmd.Context(), settings)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), presenter.Policy(saved))
		},
	}
	set.Flags().UintVar(&leaseDays, "lease-days", 14, "default lease duration")
	set.Flags().UintVar(&bookingDays, "booking-days", 3, "default booking duration")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configured durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := a.store.LoadPolicySettings(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), presenter.Policy(settings))
		},
	}

	policy.AddCommand(set, show)

	return policy
}

func newGenreCommand(a *app) *cobra.Command {
	genre := &cobra.Command{Use: "genre", Short: "Manage genres"}

	var description string

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := a.store.SaveGenre(cmd.Context(), lendingstore.Genre{
				Name:        shell.SanitizeText(args[0]),
				Description: shell.SanitizeText(description),
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), presenter.Genre(saved))
		},
	}
	add.Flags().StringVar(&description, "description", "", "")

	genre.AddCommand(add)

	return genre
}

func newBookTypeCommand(a *app) *cobra.Command {
	bookType := &cobra.Command{Use: "booktype", Short: "Manage book types"}

	bookType.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add a book type such as Hardcover or Paperback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := a.store.SaveBookType(cmd.Context(), lendingstore.BookType{Name: shell.SanitizeText(args[0])})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), presenter.BookType(saved))
		},
	})

	return bookType
}

func newBookCommand(a *app) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage books"}

	var (
		bookTypeID, genreID, isbn, author, publisher, language string
		year                                                   uint
	)

	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := parseID("type", bookTypeID)
			if err != nil {
				return err
			}

			genre, err := parseOptionalID("genre", genreID)
			if err != nil {
				return err
			}

			saved, err := a.store.SaveBook(cmd.Context(), lendingstore.Book{
				Title:      shell.SanitizeText(args[0]),
				BookTypeID: typeID,
				ISBN:       isbn,
				GenreID:    uuid.NullUUID{UUID: genre, Valid: genre != uuid.Nil},
				Author:     shell.SanitizeText(author),
				Publisher:  shell.SanitizeText(publisher),
				Year:       year,
				Language:   language,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), presenter.Book(saved))
		},
	}
	add.Flags().StringVar(&bookTypeID, "type", "", "book type id (required)")
	add.Flags().StringVar(&genreID, "genre", "", "genre id")
	add.Flags().StringVar(&isbn, "isbn", "", "")
	add.Flags().StringVar(&author, "author", "", "")
	add.Flags().StringVar(&publisher, "publisher", "", "")
	add.Flags().StringVar(&language, "language", "", "defaults to English")
	add.Flags().UintVar(&year, "year", 0, "")
	_ = add.MarkFlagRequired("type")

	book.AddCommand(add)

	return book
}
