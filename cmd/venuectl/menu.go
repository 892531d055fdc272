package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"venue-console/internal/domain"
)

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect and edit per-booking menu selections",
	}

	cmd.AddCommand(
		menuShowCmd(),
		menuTreeCmd(),
		menuSetCmd(),
	)

	return cmd
}

func menuShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show a booking's menu selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			selection, err := sdk.OrderMenu.ForOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(selection.Items) == 0 {
				info("no menu selection for this booking")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tITEM\tQTY\tNOTES")
			for _, item := range selection.Items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					item.CategoryName, item.SubCategoryName, item.Quantity, item.Notes)
			}
			w.Flush()
			if selection.GeneralNotes != "" {
				info("notes: %s", selection.GeneralNotes)
			}
			return nil
		},
	}
}

func menuTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the category tree available for menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			tree, err := sdk.OrderMenu.CategoriesWithSubCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, cat := range tree {
				fmt.Printf("%s (%s)\n", cat.Name, cat.ID)
				for _, sub := range cat.SubCategories {
					fmt.Printf("  - %s (%s)\n", sub.Name, sub.ID)
				}
			}
			return nil
		},
	}
}

func menuSetCmd() *cobra.Command {
	var items []string
	var notes string

	cmd := &cobra.Command{
		Use:   "set <order-id>",
		Short: "Replace a booking's menu selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return fmt.Errorf("at least one --item <sub-category-id> is required")
			}

			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			update := domain.OrderMenuUpdate{GeneralNotes: notes}
			for _, id := range items {
				update.Items = append(update.Items, domain.OrderMenuItemRef{
					OrderID:       args[0],
					SubCategoryID: id,
				})
			}

			msg, err := sdk.OrderMenu.Replace(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			success("%s", msg)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "Sub-category ID to include (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "General notes for the kitchen")

	return cmd
}
