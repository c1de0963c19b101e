package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/config"
)

var loginURLCmd = &cobra.Command{
	Use:   "login-url",
	Short: "Print the sign-in URL for the configured identity provider",
	Long: `Print the Casdoor authorize URL. Open it in a browser, sign in, and
copy the code from the redirect. Then run:

  quizdeck play --code <code> --state <state>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.Casdoor.Configured() {
			return errors.New("sign-in is not configured: set QUIZDECK_CASDOOR_ENDPOINT, _CLIENT_ID and _CLIENT_SECRET")
		}

		state := uuid.NewString()
		fmt.Println(auth.NewCasdoor(cfg.Casdoor).SigninURL(state))
		fmt.Println()
		fmt.Println("state:", state)
		return nil
	},
}
