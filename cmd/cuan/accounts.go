package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadiprasetio/catat-cuan/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List and add the account names the chat assistant matches against.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	return cmd
}

func listAccountsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			accounts, err := store.Accounts(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get accounts: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render("Accounts"))
			for _, name := range accounts {
				fmt.Println("  " + name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID to list accounts for")
	return cmd
}

func addAccountCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.AddAccount(ctx, userID, args[0]); err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID owning the account ('' for global)")
	return cmd
}
