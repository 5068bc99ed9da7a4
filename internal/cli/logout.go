package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of Rently",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	mgr, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	mgr.Logout(cmd.Context())
	fmt.Println(okStyle.Render("Signed out"))
	return nil
}
