package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ecom-cart/client"
	"ecom-cart/models"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:           "shop",
		Short:         "Browse the catalog, manage the cart and check out",
		SilenceUsage: true,
	}

	defaultURL := client.DefaultBaseURL
	if env := os.Getenv("ECOM_API_URL"); env != "" {
		defaultURL = env
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "base URL of the storefront API")

	loadView := func(cmd *cobra.Command) (*client.View, error) {
		view := client.NewView(client.New(apiURL))
		if err := view.Load(cmd.Context()); err != nil {
			return nil, err
		}
		return view, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "products",
			Short: "List products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				view, err := loadView(cmd)
				if err != nil {
					return err
				}
				renderProducts(cmd.OutOrStdout(), view.Snapshot())
				return nil
			},
		},
		&cobra.Command{
			Use:   "cart",
			Short: "Show the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				view, err := loadView(cmd)
				if err != nil {
					return err
				}
				_ = view.Navigate(client.StateCart)
				renderCart(cmd.OutOrStdout(), view.Snapshot())
				return nil
			},
		},
		newProductCmd(&apiURL),
		newAddCmd(loadView),
		newQuantityCmd("inc", "Add one unit to a cart line", loadView, (*client.View).Increase),
		newQuantityCmd("dec", "Remove one unit from a cart line", loadView, (*client.View).Decrease),
		newQuantityCmd("remove", "Remove a cart line", loadView, (*client.View).Remove),
		newCheckoutCmd(loadView),
	)

	return root
}

type viewLoader func(cmd *cobra.Command) (*client.View, error)

func newProductCmd(apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "product <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			product, err := client.New(*apiURL).Product(cmd.Context(), productID)
			if client.IsNotFound(err) {
				return fmt.Errorf("product %d not found", productID)
			}
			if err != nil {
				return err
			}
			renderProduct(cmd.OutOrStdout(), product)
			return nil
		},
	}
}

func newAddCmd(loadView viewLoader) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if quantity < 1 {
				return fmt.Errorf("invalid quantity %d: must be at least 1", quantity)
			}
			view, err := loadView(cmd)
			if err != nil {
				return err
			}
			for range quantity {
				if err := view.AddToCart(cmd.Context(), productID); err != nil {
					return err
				}
			}
			_ = view.Navigate(client.StateCart)
			renderCart(cmd.OutOrStdout(), view.Snapshot())
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	return cmd
}

func newQuantityCmd(
	use, short string,
	loadView viewLoader,
	action func(*client.View, context.Context, string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <cart-item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd)
			if err != nil {
				return err
			}
			if err := action(view, cmd.Context(), args[0]); err != nil {
				return err
			}
			_ = view.Navigate(client.StateCart)
			renderCart(cmd.OutOrStdout(), view.Snapshot())
			return nil
		},
	}
}

func newCheckoutCmd(loadView viewLoader) *cobra.Command {
	var customer models.CustomerInfo

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the order and print the receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadView(cmd)
			if err != nil {
				return err
			}
			_ = view.Navigate(client.StateCheckout)
			err = view.Checkout(cmd.Context(), customer)
			if err != nil && !errors.Is(err, client.ErrStaleCart) {
				return err
			}
			renderReceipt(cmd.OutOrStdout(), view.Snapshot())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&customer.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&customer.Email, "email", "", "customer email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
