package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foodtrack/internal/client"
	"foodtrack/internal/config"
)

func apiClient(v *viper.Viper) *client.Client {
	return client.New(v.GetString(config.KeyAPIURL))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newRestaurantsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List restaurants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			restaurants, err := apiClient(v).ListRestaurants(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), restaurants)
		},
	}
	return cmd
}

func newMenuCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu <restaurant-id>",
		Short: "Show a restaurant's menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			menu, err := apiClient(v).GetMenu(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), menu)
		},
	}
	return cmd
}

func newOrderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and track orders",
	}
	var (
		restaurantID int64
		itemIDs      []int64
		total        float64
	)
	place := &cobra.Command{
		Use:   "place",
		Short: "Place an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.PlaceOrderRequest{RestaurantID: restaurantID, Total: total}
			for _, id := range itemIDs {
				item, err := json.Marshal(map[string]int64{"id": id})
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
			}

			resp, err := apiClient(v).PlaceOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	place.Flags().Int64Var(&restaurantID, "restaurant", 0, "restaurant id")
	place.Flags().Int64SliceVar(&itemIDs, "item", nil, "menu item id (repeatable)")
	place.Flags().Float64Var(&total, "total", 0, "order total")

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show an order's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			order, err := apiClient(v).GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), order)
		},
	}

	advance := &cobra.Command{
		Use:   "advance <order-id>",
		Short: "Move an order to its next lifecycle stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := apiClient(v).AdvanceStatus(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.AddCommand(place, get, advance)
	return cmd
}
