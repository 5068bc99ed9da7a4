package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rently/rently-client/internal/core/domain"
)

var (
	loginName     string
	loginPassword string
	loginRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Rently",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginName, "name", "n", "", "account display name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	loginCmd.Flags().StringVarP(&loginRole, "role", "r", string(domain.RoleTenant), "account role: Landlord or Tenant")

	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	role, err := domain.ParseRole(loginRole)
	if err != nil {
		return err
	}

	mgr, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	identity, err := mgr.Login(cmd.Context(), loginName, loginPassword, role)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s %s\n",
		okStyle.Render("Signed in as"),
		nameStyle.Render(identity.Name),
		roleStyle.Render("("+string(identity.Role)+")"))
	return nil
}
