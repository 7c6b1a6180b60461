package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cesy/support-board/internal/interfaces/cli/commits"
	"github.com/cesy/support-board/internal/interfaces/cli/migrate"
	"github.com/cesy/support-board/internal/interfaces/cli/releases"
	"github.com/cesy/support-board/internal/interfaces/cli/roles"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportboard",
		Short: "Support board code ticket workflow engine",
		Long:  `Administrative entry points for the code ticket workflow: schema migration, commit intake, release notes and capability roles.`,
	}

	rootCmd.AddCommand(
		migrate.NewCommand(),
		commits.NewCommand(),
		releases.NewCommand(),
		roles.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
