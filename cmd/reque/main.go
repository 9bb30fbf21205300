package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reque-io/reque/internal/interfaces/cli/admin"
	"github.com/reque-io/reque/internal/interfaces/cli/migrate"
	"github.com/reque-io/reque/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reque",
		Short: "ReQue - role-based request tracking",
		Long:  `ReQue is a request tracking service with role-based access control, built-in server, migration tools, and administrative commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
