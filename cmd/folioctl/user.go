package main

import (
	"fmt"

	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/spf13/cobra"
)

func newUserCommand(s *session) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}

	var username, password, role string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long: `Create an account with a bcrypt-hashed password.

Examples:
  folioctl user create --username admin --password s3cret --role admin
  folioctl user create --username guest --password s3cret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := s.openDB()
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			user, err := service.NewUserService(gdb).Create(cmd.Context(), username, password, role)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "CREATED %d %s (%s)\n", user.ID, user.Username, user.Role)
			return nil
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "login name")
	createCmd.Flags().StringVar(&password, "password", "", "login password")
	createCmd.Flags().StringVar(&role, "role", db.RoleViewer, "admin or viewer")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	promoteCmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant the admin role to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := s.openDB()
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			user, err := service.NewUserService(gdb).Promote(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PROMOTED %s\n", user.Username)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List accounts",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := s.openDB()
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			users, err := service.NewUserService(gdb).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, user := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", user.ID, user.Username, user.Role)
			}
			return nil
		},
	}

	userCmd.AddCommand(createCmd, promoteCmd, listCmd)
	return userCmd
}
