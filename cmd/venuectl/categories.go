package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage menu categories",
	}

	cmd.AddCommand(
		categoriesListCmd(),
		categoriesAddCmd(),
		categoriesRemoveCmd(),
		subCategoriesCmd(),
	)

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			categories, err := sdk.Categories.All(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				info("no categories defined")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%t\n", c.ID, c.Name, c.IsActive)
			}
			w.Flush()
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAdmin(cmd.Context(), sdk); err != nil {
				return err
			}

			msg, err := sdk.Categories.Add(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			success("%s", msg)
			return nil
		},
	}
}

func categoriesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <category-id>",
		Short: "Delete a category and its sub-categories (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAdmin(cmd.Context(), sdk); err != nil {
				return err
			}

			if err := sdk.Categories.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			success("category deleted")
			return nil
		},
	}
}

func subCategoriesCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "subs",
		Short: "List sub-categories, optionally under one parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			subs, err := sdk.SubCategories.All(cmd.Context())
			if parent != "" {
				subs, err = sdk.SubCategories.ByParent(cmd.Context(), parent)
			}
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				info("no sub-categories defined")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPARENT")
			for _, sc := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", sc.ID, sc.Name, sc.ParentCategoryName)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent category ID")

	return cmd
}
