package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

func newLoginCmd(c *cli) *cobra.Command {
	var (
		email, password, fullName string
		googleIDToken             string
		signUp                    bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in, or create an account with --signup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()
			out := cmd.OutOrStdout()

			if googleIDToken != "" {
				sess, err := d.sessions.SignInWithProvider(ctx, auth.ProviderGoogle, googleIDToken)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Signed in as %s.\n", sess.DisplayName())
				return nil
			}

			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			if signUp {
				if err := d.sessions.SignUp(ctx, email, password, fullName); err != nil {
					return err
				}
				fmt.Fprintln(out, "Account created! You can now log in.")
				return nil
			}
			sess, err := d.sessions.SignIn(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Signed in as %s.\n", sess.DisplayName())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&email, "email", "", "account email")
	f.StringVar(&password, "password", "", "account password")
	f.StringVar(&fullName, "full-name", "", "full name, used with --signup")
	f.BoolVar(&signUp, "signup", false, "create the account instead of signing in")
	f.StringVar(&googleIDToken, "google-id-token", "", "sign in with a Google ID token")
	cmd.MarkFlagsMutuallyExclusive("google-id-token", "email")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := d.sessions.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
