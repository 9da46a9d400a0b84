package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

func cartCmd() *cobra.Command {
	cartRoot := &cobra.Command{
		Use:   "cart",
		Short: "Manage the session cart",
	}

	cartRoot.AddCommand(
		cartShowCmd(),
		cartAddCmd(),
		cartRemoveCmd(),
		cartClearCmd(),
		cartOpenCmd("open", "Mark the cart panel open", true),
		cartOpenCmd("close", "Mark the cart panel closed", false),
	)

	return cartRoot
}

// cartAction runs fn against the current session and prints the cart.
func cartAction(
	fn func(ctx context.Context, c *apiclient.Client, id string) (*domain.CartSummary, error),
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		id, err := sessionID()
		if err != nil {
			return err
		}
		summary, err := fn(context.Background(), newClient(), id)
		if err != nil {
			return err
		}
		if jsonOutput() {
			return outputJSON(cmd.OutOrStdout(), summary)
		}
		return printCart(cmd.OutOrStdout(), summary)
	}
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: cartAction(func(ctx context.Context, c *apiclient.Client, id string) (*domain.CartSummary, error) {
			return c.Cart(ctx, id)
		}),
	}
}

func cartAddCmd() *cobra.Command {
	var (
		name  string
		price string
	)

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: "Add a product recommended earlier in the session by its id. With --name\n" +
			"the product is added as given instead of being looked up in the transcript.",
		Example: `  vchat cart add curcumine-001
  vchat cart add custom-1 --name "Magnésium marin" --price "12,50 €"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			c := newClient()
			ctx := context.Background()

			var res *apiclient.AddResult
			if name != "" {
				res, err = c.AddProduct(ctx, id, &domain.Product{ID: args[0], Name: name, Price: price})
			} else {
				res, err = c.AddRecommended(ctx, id, args[0])
			}
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Notice)
			return printCart(cmd.OutOrStdout(), &res.Cart)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name for an ad-hoc product")
	cmd.Flags().StringVar(&price, "price", "", "display price for an ad-hoc product")

	return cmd
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cartAction(func(ctx context.Context, c *apiclient.Client, id string) (*domain.CartSummary, error) {
				return c.RemoveItem(ctx, id, args[0])
			})(cmd, args)
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: cartAction(func(ctx context.Context, c *apiclient.Client, id string) (*domain.CartSummary, error) {
			return c.ClearCart(ctx, id)
		}),
	}
}

func cartOpenCmd(use, short string, open bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: cartAction(func(ctx context.Context, c *apiclient.Client, id string) (*domain.CartSummary, error) {
			return c.SetCartOpen(ctx, id, open)
		}),
	}
}
