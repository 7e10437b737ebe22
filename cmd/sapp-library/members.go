package main

import (
	"github.com/spf13/cobra"

	"github.com/mikietechie/sapp-library/app/features/command/savemember"
	"github.com/mikietechie/sapp-library/app/features/query/listmembers"
	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
	"github.com/mikietechie/sapp-library/lendingstore"
)

func memberViews(members []lendingstore.Member) []presenter.MemberView {
	return presenter.List(members, presenter.Member)
}

func newMemberCommand(a *app) *cobra.Command {
	member := &cobra.Command{Use: "member", Short: "Register and list members"}

	var (
		memberID, userRef, fullName, role, about, terminationReason, directory string
		active                                                                 bool
		filter                                                                 map[string]string
	)

	save := &cobra.Command{
		Use:   "save",
		Short: "Register a member or change one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			command := savemember.BuildCommand(userRef, fullName, lendingstore.MemberRole(role), about, a.clock())
			command.TerminationReason = shell.SanitizeText(terminationReason)

			if cmd.Flags().Changed("active") {
				command.Active = &active
			}

			var err error
			if command.MemberID, err = parseOptionalID("id", memberID); err != nil {
				return err
			}

			handler := savemember.NewCommandHandler(
				a.store,
				savemember.ParseStaticDirectory(directory),
				savemember.WithRetryOptions(a.retryOptions(command.CommandType())...),
			)

			return runCommand(cmd, a, handler, command, presenter.Member)
		},
	}
	save.Flags().StringVar(&memberID, "id", "", "member id to update")
	save.Flags().StringVar(&userRef, "user-ref", "", "reference of the linked user account")
	save.Flags().StringVar(&fullName, "name", "", "full name, defaults to the display name of the linked user")
	save.Flags().StringVar(&role, "role", "", "One or Two")
	save.Flags().BoolVar(&active, "active", true, "")
	save.Flags().StringVar(&about, "about", "", "")
	save.Flags().StringVar(&terminationReason, "termination-reason", "", "")
	save.Flags().StringVar(&directory, "directory", "", `display names of users as "ref=Name;ref=Name"`)

	list := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, a, listmembers.NewQueryHandler(a.store), listmembers.BuildQuery(filter), memberViews)
		},
	}
	list.Flags().StringToStringVar(&filter, "filter", nil, "key=value filters, e.g. active=true,role=Two")

	member.AddCommand(save, list)

	return member
}
