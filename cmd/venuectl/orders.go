package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"venue-console/internal/domain"
)

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage venue bookings",
	}

	cmd.AddCommand(
		ordersListCmd(),
		ordersSearchCmd(),
		ordersAddCmd(),
		ordersDeactivateCmd(),
	)

	return cmd
}

func ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			orders, err := sdk.Orders.All(cmd.Context())
			if err != nil {
				return err
			}
			printOrders(orders)
			return nil
		},
	}
}

func ordersSearchCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List bookings in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("both --from and --to are required (YYYY-MM-DD)")
			}

			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			orders, err := sdk.Orders.Search(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			printOrders(orders)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end date (YYYY-MM-DD)")

	return cmd
}

func ordersAddCmd() *cobra.Command {
	var order domain.Order

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			if order.FullName == "" || order.Date == "" {
				return fmt.Errorf("--name and --date are required")
			}

			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			msg, err := sdk.Orders.Add(cmd.Context(), order)
			if err != nil {
				return err
			}
			success("%s", msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&order.FullName, "name", "", "Customer full name")
	cmd.Flags().StringVar(&order.Phone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&order.Date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&order.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&order.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&order.OrderType, "type", "", "Event type")
	cmd.Flags().Float64Var(&order.Price, "price", 0, "Price per guest")
	cmd.Flags().IntVar(&order.MinGuests, "min-guests", 0, "Minimum guest count")
	cmd.Flags().IntVar(&order.MaxGuests, "max-guests", 0, "Maximum guest count")
	cmd.Flags().Float64Var(&order.OrderAmount, "amount", 0, "Total amount")
	cmd.Flags().Float64Var(&order.PaidAmount, "paid", 0, "Amount paid so far")
	cmd.Flags().StringVar(&order.Comments, "comments", "", "Free-form comments")

	return cmd
}

func ordersDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <order-id>",
		Short: "Soft-delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sdk, err := newSDK()
			if err != nil {
				return err
			}
			if err := requireAuth(cmd.Context(), sdk); err != nil {
				return err
			}

			msg, err := sdk.Orders.Deactivate(cmd.Context(), domain.Order{ID: args[0]})
			if err != nil {
				return err
			}
			success("%s", msg)
			return nil
		},
	}
}

func printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		info("no bookings found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTIME\tNAME\tTYPE\tGUESTS\tPAID\tACTIVE")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s-%s\t%s\t%s\t%d-%d\t%.0f/%.0f\t%t\n",
			o.ID, o.Date, o.StartTime, o.EndTime, o.FullName, o.OrderType,
			o.MinGuests, o.MaxGuests, o.PaidAmount, o.OrderAmount, o.IsActive)
	}
	w.Flush()
}
