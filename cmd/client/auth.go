package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-student-registry/models"
)

func credentialFlags(cmd *cobra.Command, credentials *models.Credentials) {
	cmd.Flags().StringVar(&credentials.Email, "email", "", "account email")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func newRegisterCmd(state *clientState) *cobra.Command {
	var credentials models.Credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := state.server.Register(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
	credentialFlags(cmd, &credentials)

	return cmd
}

// newLoginCmd prints only the token so that it can be captured with
// export REGISTRY_TOKEN=$(registry-client login ...).
func newLoginCmd(state *clientState) *cobra.Command {
	var credentials models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := state.server.Login(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	credentialFlags(cmd, &credentials)

	return cmd
}

func newLogoutCmd(state *clientState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the session of --token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireToken(state); err != nil {
				return err
			}
			if err := state.server.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func requireToken(state *clientState) error {
	if state.server.Token() == "" {
		return errNoToken
	}
	return nil
}
