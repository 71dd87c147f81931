package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadiprasetio/catat-cuan/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List and add the category names the chat assistant matches against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.Categories(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render("Categories"))
			for _, name := range categories {
				fmt.Println("  " + name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID to list categories for")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.AddCategory(ctx, userID, args[0]); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID owning the category ('' for global)")
	return cmd
}
