package cli

import (
	"github.com/spf13/cobra"
)

func version() string {
	return "v0.1.0"
}

func help() string {
	return `ydbc runs statements through a YDB-style connection: typed parameters,
explicit transactions and batches, plus versioned SQL migrations.
Usage:
  ydbc <command> [flags]
Available Commands:
  exec        Execute one statement
  batch       Execute several fragments as one statement
  types       List the supported value kinds
  migrate     Run database migrations
	up          Apply all pending migrations
	down        Roll back the latest migration
	status      Show the current migration status
Flags:
  -c, --config   path to a TOML config file
  -h, --help     help for ydbc
Use "ydbc [command] --help" for more information about a command.
Examples:
  ydbc exec 'SELECT * FROM users WHERE id = $id' --param id=Int64:1
  ydbc exec --tx 'UPDATE users SET name = $name' --param name=Utf8:alice
  ydbc batch 'INSERT INTO t VALUES (1)' 'INSERT INTO t VALUES (2)'
  ydbc migrate up --dir migrations`
}

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version())
		},
	}
}

// NewHelpCmd builds the `help` command.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Print help information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(help())
		},
	}
}

// NewRootCmd builds the top-level `ydbc` command.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "ydbc",
		Short:         "ydbc: typed statements, transactions and migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	root.AddCommand(NewExecCmd(opts))
	root.AddCommand(NewBatchCmd(opts))
	root.AddCommand(NewTypesCmd())
	root.AddCommand(NewMigrateCmd(opts))
	root.AddCommand(NewVersionCmd())
	root.AddCommand(NewHelpCmd())
	return root
}
