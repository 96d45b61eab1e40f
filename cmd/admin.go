package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vasanthreddy12/e-commerce/configs"
	"github.com/vasanthreddy12/e-commerce/payments"
	"github.com/vasanthreddy12/e-commerce/server"
)

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = os.Getenv("ADMIN_EMAIL")
			}
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if email == "" || password == "" {
				return errors.New("admin email and password are required")
			}

			cfg, err := configs.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			stores, closeStore, err := server.Bootstrap(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer closeStore(ctx)

			svc := server.NewServices(cfg, stores, payments.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret))
			user, created, err := svc.Auth.CreateAdmin(ctx, name, email, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user created: %s\n", user.Email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user already exists: %s\n", user.Email)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Admin", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email (default $ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "password (default $ADMIN_PASSWORD)")
	return cmd
}
