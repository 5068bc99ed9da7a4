package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rently/rently-client/internal/core/domain"
)

var (
	registerName     string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Rently account and sign in",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "account display name")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password")
	registerCmd.Flags().StringVarP(&registerRole, "role", "r", string(domain.RoleTenant), "account role: Landlord or Tenant")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	role, err := domain.ParseRole(registerRole)
	if err != nil {
		return err
	}

	mgr, cleanup, err := buildManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	identity, err := mgr.Register(cmd.Context(), registerName, registerPassword, role)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s %s\n",
		okStyle.Render("Account created, signed in as"),
		nameStyle.Render(identity.Name),
		roleStyle.Render("("+string(identity.Role)+")"))
	return nil
}
