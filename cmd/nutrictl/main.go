// nutrictl is the operator CLI for a running NutriAI API server: backups
// (local file or S3), demo data, resets and a quick look at today's numbers.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3000"

// cli holds the flags shared by every subcommand.
type cli struct {
	server   string
	newStore func(cmd *cobra.Command) (objectStore, error) // overridable for tests
}

func newRootCmd() *cobra.Command {
	app := &cli{newStore: newS3Store}

	root := &cobra.Command{
		Use:           "nutrictl",
		Short:         "nutrictl manages a NutriAI API server",
		Long:          "nutrictl talks to a running NutriAI API server to back up, restore, seed and reset its data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional for the CLI.
			_ = godotenv.Load()
			if !cmd.Flags().Changed("server") {
				if v := os.Getenv("NUTRIAI_SERVER"); v != "" {
					app.server = v
				}
			}
		},
	}
	root.PersistentFlags().StringVar(&app.server, "server", defaultServer, "NutriAI API base URL (env NUTRIAI_SERVER)")

	root.AddCommand(
		newExportCmd(app),
		newImportCmd(app),
		newSeedCmd(app),
		newResetCmd(app),
		newGoalsCmd(app),
		newTodayCmd(app),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// api returns a client for the configured server.
func (a *cli) api() *apiClient {
	return newAPIClient(a.server)
}

func success(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func notice(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func plain(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}
