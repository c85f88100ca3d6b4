package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"foodtrack/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "foodtrack",
		Short:         "Order and collection tracking service",
		Long:          `foodtrack serves a restaurant catalog, an order ledger with a fixed delivery lifecycle and a waste collection tracker over HTTP/JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := config.ClientFlags(root.PersistentFlags(), v); err != nil {
		panic(err)
	}

	root.AddCommand(
		newServeCmd(v),
		newRestaurantsCmd(v),
		newMenuCmd(v),
		newOrderCmd(v),
	)

	return root
}
