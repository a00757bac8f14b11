package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/trips/internal/cli"
	"github.com/jacksmith/trips/internal/ops"
	"github.com/jacksmith/trips/internal/storage"
)

var listCmd = &cobra.Command{
	Use:     "list [query...]",
	Aliases: []string{"ls", "find"},
	Short:   "List and search saved trips",
	Long: `List saved trips, optionally filtered by a search query.

A trip matches when every word of the query appears in its title,
destination or notes (case-insensitive). Order is always the order of
your collection, newest trips first.

Flags:
  --view        grid (cards) or list (table); default from .tripsconfig.yaml
  --favorites   Show only favorite trips

Examples:
  trips list
  trips list paris week
  trips list --favorites --view=list`,
	RunE: runList,
}

var (
	listView      string
	listFavorites bool
)

func init() {
	listCmd.Flags().StringVar(&listView, "view", "", "view mode: grid or list")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "show only favorite trips")

	listCmd.RegisterFlagCompletionFunc("view", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{storage.ViewGrid, storage.ViewList}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	view := strings.ToLower(listView)
	if view == "" {
		view = a.Config.DefaultView
	}
	if view != storage.ViewGrid && view != storage.ViewList {
		return &cli.ValidationError{Field: "view", Message: fmt.Sprintf("%q (expected grid or list)", listView)}
	}

	query := strings.Join(args, " ")
	result := a.Manager.List(query, ops.ListOptions{FavoritesOnly: listFavorites})

	switch result.State {
	case ops.ViewLocked:
		fmt.Println("Sign in to see your saved trips.")
		fmt.Println(cli.Gray("Run 'trips login <email>' to get started."))
		return nil
	case ops.ViewLoading:
		fmt.Println("Loading your trips...")
		return nil
	}

	if result.Empty() {
		fmt.Println("No trips found")
		fmt.Println(cli.Gray(result.Hint()))
		return nil
	}

	if view == storage.ViewList {
		renderTable(os.Stdout, result.Trips)
	} else {
		renderGrid(os.Stdout, result.Trips)
	}

	fmt.Println()
	fmt.Println(cli.Gray(fmt.Sprintf("%d of %d trips", len(result.Trips), result.Total)))
	return nil
}
