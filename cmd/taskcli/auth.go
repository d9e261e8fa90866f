package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-manager/client/internal/authapi"
)

func registerCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			token, err := app.auth.Register(cmd.Context(), authapi.RegisterRequest{
				Email:    email,
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Registered %s, signed in for %ds\n", email, token.ExpiresIn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Display name (optional)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			token, err := app.auth.Login(cmd.Context(), authapi.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s for %ds\n", email, token.ExpiresIn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}
