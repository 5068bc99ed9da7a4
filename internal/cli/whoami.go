package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	mgr, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	identity := mgr.Current()
	if identity == nil {
		fmt.Println(roleStyle.Render("Not signed in"))
		return nil
	}

	fmt.Printf("%s %s %s\n",
		nameStyle.Render(identity.Name),
		roleStyle.Render("("+string(identity.Role)+")"),
		roleStyle.Render("id="+identity.ID))
	return nil
}
