package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the accounts known to the identity directory",
	RunE:  runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	directory, cleanup, err := buildDirectory(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	identities, err := directory.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(identities) == 0 {
		fmt.Println(roleStyle.Render("No accounts registered"))
		return nil
	}

	for _, identity := range identities {
		fmt.Printf("%s %s\n",
			nameStyle.Render(identity.Name),
			roleStyle.Render("("+string(identity.Role)+")"))
	}
	return nil
}
