package main

import (
	"github.com/spf13/cobra"
)

// cli is the root command together with the app state its subcommands share.
type cli struct {
	root *cobra.Command
	app  *app
}

// Execute runs the root command and releases the store afterwards, also when a subcommand failed.
func (c cli) Execute() error {
	defer c.app.close()

	return c.root.Execute()
}

func newCLI() cli {
	a := &app{}

	root := &cobra.Command{
		Use:          "sapp-library",
		Short:        "Lending and inventory administration of a library",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with LIBRARY_* settings, ignored when missing")
	root.PersistentFlags().StringVar(&a.actor, "actor", "", "name recorded on restocked and retired copies")

	root.AddCommand(
		newMigrateCommand(a),
		newPolicyCommand(a),
		newGenreCommand(a),
		newBookTypeCommand(a),
		newBookCommand(a),
		newItemCommand(a),
		newMemberCommand(a),
		newLeaseCommand(a),
		newBookingCommand(a),
		newRestockCommand(a),
		newStatsCommand(a),
		newServeCommand(a),
	)

	return cli{root: root, app: a}
}
