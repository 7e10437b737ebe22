package main

import (
	"github.com/spf13/cobra"

	"github.com/mikietechie/sapp-library/app/features/command/leasebookitem"
	"github.com/mikietechie/sapp-library/app/features/command/placebooking"
	"github.com/mikietechie/sapp-library/app/features/command/returnbookitem"
	"github.com/mikietechie/sapp-library/app/features/query/listbookings"
	"github.com/mikietechie/sapp-library/app/features/query/listleases"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
	"github.com/mikietechie/sapp-library/lendingstore"
)

func leaseViews(leases []lendingstore.Lease) []presenter.LeaseView {
	return presenter.List(leases, presenter.Lease)
}

func bookingViews(bookings []lendingstore.Booking) []presenter.BookingView {
	return presenter.List(bookings, presenter.Booking)
}

func newLeaseCommand(a *app) *cobra.Command {
	lease := &cobra.Command{Use: "lease", Short: "Lend copies and take them back"}

	var (
		leaseID, itemID, memberID, condition, leasedOn, dueDate string
		filter                                                  map[string]string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create or update a lease; the due date defaults to the policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			command := leasebookitem.Command{Condition: lendingstore.Condition(condition), OccurredAt: a.clock()}

			var err error
			if command.LeaseID, err = parseOptionalID("id", leaseID); err != nil {
				return err
			}
			if command.BookItemID, err = parseID("item", itemID); err != nil {
				return err
			}
			if command.MemberID, err = parseID("member", memberID); err != nil {
				return err
			}
			if command.LeasedOn, err = parseOptionalDate("leased-on", leasedOn); err != nil {
				return err
			}
			if command.DueDate, err = parseOptionalDate("due-date", dueDate); err != nil {
				return err
			}

			handler := leasebookitem.NewCommandHandler(
				a.store,
				leasebookitem.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, presenter.LeaseWrite)
		},
	}
	create.Flags().StringVar(&leaseID, "id", "", "lease id to update")
	create.Flags().StringVar(&itemID, "item", "", "book item id (required)")
	create.Flags().StringVar(&memberID, "member", "", "member id (required)")
	create.Flags().StringVar(&condition, "condition", "", "condition at lease time, defaults to Good")
	create.Flags().StringVar(&leasedOn, "leased-on", "", "YYYY-MM-DD, defaults to today")
	create.Flags().StringVar(&dueDate, "due-date", "", "YYYY-MM-DD, defaults to leased-on plus the lease days")
	_ = create.MarkFlagRequired("item")
	_ = create.MarkFlagRequired("member")

	var returnedOn, returnCondition string

	giveBack := &cobra.Command{
		Use:   "return LEASE_ID",
		Short: "Record the return of a leased copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("lease", args[0])
			if err != nil {
				return err
			}

			command := returnbookitem.BuildCommand(id, a.clock())
			command.Condition = lendingstore.Condition(returnCondition)
			if command.ReturnedOn, err = parseOptionalDate("on", returnedOn); err != nil {
				return err
			}

			handler := returnbookitem.NewCommandHandler(
				a.store,
				returnbookitem.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, presenter.LeaseWrite)
		},
	}
	giveBack.Flags().StringVar(&returnedOn, "on", "", "YYYY-MM-DD, defaults to today")
	giveBack.Flags().StringVar(&returnCondition, "condition", "", "condition at return time")

	list := &cobra.Command{
		Use:   "list",
		Short: "List leases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, listleases.NewQueryHandler(a.store), listleases.BuildQuery(filter), leaseViews)
		},
	}
	list.Flags().StringToStringVar(&filter, "filter", nil, "key=value filters, e.g. open=true,member=<id>")

	lease.AddCommand(create, giveBack, list)

	return lease
}

func newBookingCommand(a *app) *cobra.Command {
	booking := &cobra.Command{Use: "booking", Short: "Reserve books for members"}

	var (
		bookingID, bookID, memberID, status, expireDate string
		filter                                          map[string]string
	)

	place := &cobra.Command{
		Use:   "place",
		Short: "Create or update a booking; the expire date defaults to the policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			command := placebooking.Command{Status: lendingstore.BookingStatus(status), OccurredAt: a.clock()}

			var err error
			if command.BookingID, err = parseOptionalID("id", bookingID); err != nil {
				return err
			}
			if command.BookID, err = parseID("book", bookID); err != nil {
				return err
			}
			if command.MemberID, err = parseID("member", memberID); err != nil {
				return err
			}
			if command.ExpireDate, err = parseOptionalDate("expire-date", expireDate); err != nil {
				return err
			}

			handler := placebooking.NewCommandHandler(
				a.store,
				placebooking.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, presenter.Booking)
		},
	}
	place.Flags().StringVar(&bookingID, "id", "", "booking id to update")
	place.Flags().StringVar(&bookID, "book", "", "book id (required)")
	place.Flags().StringVar(&memberID, "member", "", "member id (required)")
	place.Flags().StringVar(&status, "status", "", "Pending, Accepted, Ignored, Expired or Granted")
	place.Flags().StringVar(&expireDate, "expire-date", "", "YYYY-MM-DD, defaults to today plus the booking days")
	_ = place.MarkFlagRequired("book")
	_ = place.MarkFlagRequired("member")

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, listbookings.NewQueryHandler(a.store), listbookings.BuildQuery(filter), bookingViews)
		},
	}
	list.Flags().StringToStringVar(&filter, "filter", nil, "key=value filters, e.g. status=Pending,expire_date_lte=2024-03-01")

	booking.AddCommand(place, list)

	return booking
}
