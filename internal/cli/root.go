package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "helpdeskctl",
	Short: "Operational tooling for the helpdesk service",
	Long: `Helpdeskctl performs one-off administrative operations against a
running helpdesk deployment: bootstrapping the first administrator and
preparing gateway credentials.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("helpdeskctl %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(grantAdminCmd)
	rootCmd.AddCommand(hashTokenCmd)
	rootCmd.AddCommand(versionCmd)
}

// SetVersion overrides the reported version (set from the build).
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
