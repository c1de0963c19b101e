package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz app",
	RunE: func(cmd *cobra.Command, args []string) error {
		var flags playFlags
		flags.Guest, _ = cmd.Flags().GetBool("guest")
		flags.Code, _ = cmd.Flags().GetString("code")
		flags.State, _ = cmd.Flags().GetString("state")
		return runApp(cmd, flags)
	},
}

func init() {
	playCmd.Flags().Bool("guest", false, "Skip sign-in and play as a guest")
	playCmd.Flags().String("code", "", "Authorization code from the login-url redirect")
	playCmd.Flags().String("state", "", "State value printed by login-url")
	playCmd.MarkFlagsMutuallyExclusive("guest", "code")

	// Context for provider initialization.
	playCmd.SetContext(context.Background())
}
