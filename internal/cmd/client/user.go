package client

import (
	"github.com/spf13/cobra"
)

// NewUserCommand constructs the `user` command group and subcommands.
func NewUserCommand(baseURL BaseURLFunc) *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "User operations"}
	userCmd.AddCommand(
		newUserSignupCommand(baseURL),
		newUserLoginCommand(baseURL),
		newUserListCommand(baseURL),
	)
	return userCmd
}

func credentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("username", "", "Account username")
	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func newUserSignupCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			var out map[string]any
			if err := postJSON(baseURL()+"/v1/auth/signup", map[string]string{"username": username, "password": password}, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	credentialFlags(cmd)
	return cmd
}

func newUserLoginCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check account credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			var out map[string]any
			if err := postJSON(baseURL()+"/v1/auth/login", map[string]string{"username": username, "password": password}, &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	credentialFlags(cmd)
	return cmd
}

func newUserListCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []map[string]any
			if err := getJSON(baseURL()+"/v1/users", &out); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
